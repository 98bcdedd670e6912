package tags

import (
	"annobot/bot/commands"
	"annobot/service"
)

// Feature serves named text snippets stored per server
type Feature struct {
	uowFactory service.UnitOfWorkFactory
}

// NewFeature creates a new tags feature instance
func NewFeature(uowFactory service.UnitOfWorkFactory) *Feature {
	return &Feature{uowFactory: uowFactory}
}

func (f *Feature) Commands() []*commands.Command {
	return []*commands.Command{
		{
			Name:        "tag",
			Aliases:     []string{"t"},
			Brief:       "Show a tag",
			Description: "Posts the text stored under the given name.",
			Usage:       "<name>",
			MinArgs:     1,
			Handler:     f.handleTag,
		},
		{
			Name:        "tags",
			Brief:       "List all tags",
			Description: "Lists the names of every tag on this server.",
			Handler:     f.handleList,
		},
		{
			Name:        "tagcreate",
			Brief:       "Create or replace a tag",
			Description: "Stores the text under the given name, replacing any previous content.",
			Usage:       "<name> <content...>",
			Hidden:      true,
			MinArgs:     2,
			Handler:     f.handleCreate,
		},
		{
			Name:        "tagdelete",
			Brief:       "Delete a tag",
			Description: "Removes the tag with the given name.",
			Usage:       "<name>",
			Hidden:      true,
			MinArgs:     1,
			Handler:     f.handleDelete,
		},
	}
}
