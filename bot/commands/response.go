package commands

import (
	"fmt"
	"time"
)

// Embed colors
const (
	ColorError    = 0xff0000
	ColorWarn     = 0xffcc4d
	ColorInfo     = 0x009dff
	ColorSuccess  = 0x00ff2a
	ColorUnknown  = 0xbe1931
	ColorMisc     = 0xc2c2c2
	ColorGreeting = 0xfec01d
)

// Field is a name/value pair rendered below the description
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Response is the content of a reply. Rendering it is the transport's job.
type Response struct {
	Title       string
	Description string
	Color       int
	Footer      string
	Fields      []Field

	// Content is sent as plain message text alongside the embed, e.g. for role mentions
	Content string
}

// RequestFooter is attached to every reply
func RequestFooter(name string) string {
	return fmt.Sprintf("Requested by %s", name)
}

// Info builds a neutral informational response
func Info(title, description string) *Response {
	return &Response{Title: title, Description: description, Color: ColorInfo}
}

// Success builds a confirmation response
func Success(title, description string) *Response {
	return &Response{Title: "✅ " + title, Description: description, Color: ColorSuccess}
}

// ErrorResponse renders the reply for a classified failure
func ErrorResponse(err *CommandError, prefix string) *Response {
	switch err.Kind {
	case KindUnauthorized:
		return &Response{
			Title:       "❌ Error: Insufficient permissions.",
			Description: fmt.Sprintf("Type `%shelp` for a list of available commands.", prefix),
			Color:       ColorError,
		}

	case KindNotFound:
		if err.Suggestion != "" {
			return &Response{
				Title:       "❓ Unknown command!",
				Description: fmt.Sprintf("Did you mean `%s%s`?", prefix, err.Suggestion),
				Color:       ColorUnknown,
			}
		}
		return &Response{
			Title:       "❓ Unknown command!",
			Description: fmt.Sprintf("Use `%shelp` for a list of available commands.", prefix),
			Color:       ColorUnknown,
		}

	case KindCooldown:
		return &Response{
			Title:       "🕘 Error: This command is on cooldown.",
			Description: fmt.Sprintf("Please retry in: `%s`", FormatRetry(err.RetryAfter)),
			Color:       ColorError,
		}

	case KindMissingArgument:
		desc := fmt.Sprintf("One or more arguments are missing. \n__Hint:__ You can use `%shelp %s` to view command usage.", prefix, err.Command)
		if err.Usage != "" {
			desc += fmt.Sprintf("\n**Usage:** `%s`", err.Usage)
		}
		return &Response{
			Title:       "❌ Missing argument.",
			Description: desc,
			Color:       ColorError,
		}

	case KindUserInput:
		hint := err.Hint
		if hint == "" {
			hint = "Please check command usage."
		}
		return &Response{
			Title:       "⚠️ Warning: Invalid data entered.",
			Description: hint,
			Color:       ColorWarn,
		}

	default:
		return &Response{
			Title:       "❌ Error: Something went wrong.",
			Description: "Something went wrong. Please try again later.",
			Color:       ColorError,
		}
	}
}

// FormatRetry renders a duration as H:MM:SS, rounded to the nearest second
func FormatRetry(d time.Duration) string {
	total := int64(d.Round(time.Second) / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
