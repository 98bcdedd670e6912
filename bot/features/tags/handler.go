package tags

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"annobot/bot/commands"
	"annobot/bot/common"
	"annobot/models"
)

const (
	maxNameLength    = 64
	maxContentLength = 2000
)

// normalizeName lowercases tag names so lookups are case-insensitive
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// isReserved matches regardless of case since tag names are stored lowercase
func isReserved(name string) bool {
	return models.IsReservedTextName(strings.ToUpper(name))
}

func (f *Feature) handleTag(ctx context.Context, inv *commands.Invocation) (*commands.Response, error) {
	name := normalizeName(inv.Arg(0))

	var (
		content string
		found   bool
	)
	err := common.WithServices(ctx, f.uowFactory, inv.GuildID, func(svc *common.Services) error {
		var err error
		content, found, err = svc.Texts.GetText(ctx, name, inv.GuildID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, commands.UserInputErrorf("There is no tag named `%s`. Use `%stags` to list them.", name, inv.Prefix)
	}

	return &commands.Response{
		Title:       name,
		Description: content,
		Color:       commands.ColorMisc,
	}, nil
}

func (f *Feature) handleList(ctx context.Context, inv *commands.Invocation) (*commands.Response, error) {
	var names []string
	err := common.WithServices(ctx, f.uowFactory, inv.GuildID, func(svc *common.Services) error {
		var err error
		names, err = svc.Texts.ListTagNames(ctx, inv.GuildID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		return commands.Info("🏷️ Tags", "No tags have been created on this server yet."), nil
	}

	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "`" + name + "`"
	}
	return commands.Info("🏷️ Tags",
		fmt.Sprintf("%s\n\nUse `%stag <name>` to show one.", strings.Join(quoted, ", "), inv.Prefix)), nil
}

func (f *Feature) handleCreate(ctx context.Context, inv *commands.Invocation) (*commands.Response, error) {
	name := normalizeName(inv.Arg(0))
	content := inv.Rest(1)

	switch {
	case isReserved(name):
		return nil, commands.UserInputErrorf("`%s` is reserved and cannot be used as a tag name.", name)
	case utf8.RuneCountInString(name) > maxNameLength:
		return nil, commands.UserInputErrorf("Tag names can be at most %d characters long.", maxNameLength)
	case utf8.RuneCountInString(content) > maxContentLength:
		return nil, commands.UserInputErrorf("Tag content can be at most %d characters long.", maxContentLength)
	}

	err := common.WithServices(ctx, f.uowFactory, inv.GuildID, func(svc *common.Services) error {
		return svc.Texts.SetText(ctx, name, content, inv.GuildID)
	})
	if err != nil {
		return nil, err
	}

	return commands.Success("Tag saved", fmt.Sprintf("Use `%stag %s` to show it.", inv.Prefix, name)), nil
}

func (f *Feature) handleDelete(ctx context.Context, inv *commands.Invocation) (*commands.Response, error) {
	name := normalizeName(inv.Arg(0))
	if isReserved(name) {
		return nil, commands.UserInputErrorf("`%s` is reserved and cannot be deleted.", name)
	}

	var removed bool
	err := common.WithServices(ctx, f.uowFactory, inv.GuildID, func(svc *common.Services) error {
		var err error
		removed, err = svc.Texts.DeleteText(ctx, name, inv.GuildID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if !removed {
		return nil, commands.UserInputErrorf("There is no tag named `%s`.", name)
	}
	return commands.Success("Tag deleted", fmt.Sprintf("`%s` was removed.", name)), nil
}
