package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/todolane/internal/datetime"
	"github.com/sandeepkv93/todolane/internal/model"
)

var ErrUnknownCategory = errors.New("cli: unknown category")

type AddCmd struct {
	Text     []string `arg:"" help:"Task text."`
	Date     string   `help:"Date as \"DD Mon YYYY\"." short:"d"`
	Time     string   `help:"Time as \"H:MM am\" or \"H:MM pm\"." short:"t"`
	Category string   `help:"Category to add to. Defaults to the first one." short:"c"`
}

func (c *AddCmd) Run(app *Context) error {
	category, err := resolveCategory(app, c.Category)
	if err != nil {
		return err
	}
	task, err := app.Service.AddTask(app.Ctx, category, strings.Join(c.Text, " "), c.Date, c.Time)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.Out, "Added %q to %s\n", task.Text, task.Category)
	return nil
}

type ListCmd struct {
	Category string `arg:"" optional:"" help:"Category to list. Lists every category when omitted."`
}

func (c *ListCmd) Run(app *Context) error {
	var names []string
	if strings.TrimSpace(c.Category) != "" {
		name, err := resolveCategory(app, c.Category)
		if err != nil {
			return err
		}
		names = []string{name}
	} else {
		cats, err := app.Service.Categories(app.Ctx)
		if err != nil {
			return err
		}
		for _, cat := range cats {
			names = append(names, cat.Name)
		}
	}

	for i, name := range names {
		if i > 0 {
			fmt.Fprintln(app.Out)
		}
		list, err := app.Service.Tasks(app.Ctx, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "%s\n", name)
		if len(list) == 0 {
			fmt.Fprintln(app.Out, "  (no tasks)")
			continue
		}
		open, completed := model.Split(list)
		for n, t := range append(open, completed...) {
			fmt.Fprintf(app.Out, "%s\n", formatRow(app, n+1, t))
		}
	}
	return nil
}

type DoneCmd struct {
	Number   int    `arg:"" help:"Task number as shown by list."`
	Category string `help:"Category the number refers to." short:"c"`
}

func (c *DoneCmd) Run(app *Context) error {
	task, err := taskAt(app, c.Category, c.Number)
	if err != nil {
		return err
	}
	updated, err := app.Service.ToggleComplete(app.Ctx, task.ID)
	if err != nil {
		return err
	}
	if updated.Completed {
		fmt.Fprintf(app.Out, "Completed %q\n", updated.Text)
	} else {
		fmt.Fprintf(app.Out, "Reopened %q\n", updated.Text)
	}
	return nil
}

type DeleteCmd struct {
	Number   int    `arg:"" help:"Task number as shown by list."`
	Category string `help:"Category the number refers to." short:"c"`
}

func (c *DeleteCmd) Run(app *Context) error {
	task, err := taskAt(app, c.Category, c.Number)
	if err != nil {
		return err
	}
	removed, err := app.Service.DeleteTask(app.Ctx, task.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.Out, "Deleted %q\n", removed.Text)
	return nil
}

func taskAt(app *Context, category string, n int) (model.Task, error) {
	name, err := resolveCategory(app, category)
	if err != nil {
		return model.Task{}, err
	}
	return app.Service.TaskByNumber(app.Ctx, name, n)
}

// resolveCategory matches name case-insensitively against the stored
// categories. An empty name selects the first category.
func resolveCategory(app *Context, name string) (string, error) {
	cats, err := app.Service.Categories(app.Ctx)
	if err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		if len(cats) == 0 {
			return "", ErrUnknownCategory
		}
		return cats[0].Name, nil
	}
	for _, cat := range cats {
		if strings.EqualFold(cat.Name, name) {
			return cat.Name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

func formatRow(app *Context, n int, t model.Task) string {
	mark := "[ ]"
	if t.Completed {
		mark = "[x]"
	}
	line := fmt.Sprintf("  %2d. %s %s", n, mark, t.Text)
	parts := make([]string, 0, 2)
	if t.Date != "" {
		if at, ok, err := t.Due(app.Service.Location()); err == nil && ok {
			parts = append(parts, datetime.RelativeLabel(at, app.Now().In(at.Location())))
		} else {
			parts = append(parts, t.Date)
		}
	}
	if t.Time != "" {
		parts = append(parts, t.Time)
	}
	if len(parts) > 0 {
		line += "  (" + strings.Join(parts, " ") + ")"
	}
	return line
}
