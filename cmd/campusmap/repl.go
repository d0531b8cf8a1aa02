package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/theoremus-urban-solutions/campusmap/campus"
)

func runREPL(ctx context.Context, c *console, svc *campus.Service) {
	c.printStats()
	complete := completer(svc)
	for ctx.Err() == nil {
		fmt.Fprintln(c.w)
		fmt.Fprintln(c.w, menu)
		input := strings.TrimSpace(prompt.Input("> ", complete,
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionSuggestionTextColor(prompt.Yellow),
			prompt.OptionSuggestionBGColor(prompt.Black),
			prompt.OptionDescriptionBGColor(prompt.Black),
			prompt.OptionDescriptionTextColor(prompt.Yellow),
			prompt.OptionScrollbarBGColor(prompt.Black),
		))
		if input == "" {
			continue
		}
		if c.handle(ctx, input) {
			break
		}
	}
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, "** Done **")
}

// completer suggests the console commands and building names
func completer(svc *campus.Service) prompt.Completer {
	s := []prompt.Suggest{
		{Text: "*", Description: "List all buildings"},
		{Text: "@", Description: "List all bus stops"},
		{Text: "$", Description: "Exit"},
	}
	for _, b := range svc.ListBuildings() {
		s = append(s, prompt.Suggest{Text: b.Name, Description: b.Address})
	}
	return func(d prompt.Document) []prompt.Suggest {
		text := d.TextBeforeCursor()
		if text == "" {
			return []prompt.Suggest{}
		}
		return prompt.FilterContains(s, text, true)
	}
}
