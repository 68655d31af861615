package cli

import (
	"fmt"
	"strings"
)

type CategoryAddCmd struct {
	Name []string `arg:"" help:"Category name."`
}

func (c *CategoryAddCmd) Run(app *Context) error {
	created, err := app.Service.AddCategory(app.Ctx, strings.Join(c.Name, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(app.Out, "Added category %q\n", created.Name)
	return nil
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(app *Context) error {
	cats, err := app.Service.Categories(app.Ctx)
	if err != nil {
		return err
	}
	for _, cat := range cats {
		list, err := app.Service.Tasks(app.Ctx, cat.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "%s (%d)\n", cat.Name, len(list))
	}
	return nil
}

type CategoryDeleteCmd struct {
	Name string `arg:"" help:"Category to delete along with its tasks."`
	Yes  bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *CategoryDeleteCmd) Run(app *Context) error {
	name, err := resolveCategory(app, c.Name)
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := app.Confirm(fmt.Sprintf("Delete %q and all of its tasks?", name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(app.Out, "Kept category %q\n", name)
			return nil
		}
	}
	if err := app.Service.DeleteCategory(app.Ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(app.Out, "Deleted category %q\n", name)
	return nil
}
