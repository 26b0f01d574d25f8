package cli

import (
	"fmt"
	"time"

	"github.com/Leandrogm81/Compromissos/internal/models"
)

type RuleCmd struct {
	Add    RuleAddCmd    `cmd:"" help:"Add an extraction rule."`
	List   RuleListCmd   `cmd:"" help:"List extraction rules."`
	Delete RuleDeleteCmd `cmd:"" help:"Delete an extraction rule."`
}

type RuleAddCmd struct {
	Name        string `arg:"" help:"Short rule name."`
	Instruction string `arg:"" help:"Instruction appended to the extraction prompt."`
}

func (c *RuleAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if c.Name == "" || c.Instruction == "" {
		return fmt.Errorf("rule name and instruction cannot be empty")
	}

	id, err := ctx.Store.AddRule(models.ImageAiRule{
		Name:        c.Name,
		Instruction: c.Instruction,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added rule %d: %s\n", id, c.Name)
	return nil
}

type RuleListCmd struct{}

func (c *RuleListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	rules, err := ctx.Store.GetAllRules()
	if err != nil {
		return err
	}

	if len(rules) == 0 {
		fmt.Println("No extraction rules")
		return nil
	}

	for _, rule := range rules {
		fmt.Printf("%4d %s  %s\n", rule.ID, titleStyle.Render(rule.Name), dimStyle.Render(rule.Instruction))
	}
	return nil
}

type RuleDeleteCmd struct {
	ID int64 `arg:"" help:"Rule id."`
}

func (c *RuleDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Store.DeleteRule(c.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted rule %d\n", c.ID)
	return nil
}
