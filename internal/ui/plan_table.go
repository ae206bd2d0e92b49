package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

const (
	planHeaderStepConstant        = "Step"
	planHeaderNameConstant        = "Name"
	planHeaderDescriptionConstant = "Description"
	planHeaderCommandConstant     = "Command"
	planTitleTemplateConstant     = "Bootstrap plan for %s in %s:"
)

// PlanRow is one command of a rendered bootstrap plan.
type PlanRow struct {
	StepNumber  int
	StepName    string
	Description string
	CommandLine string
}

// PlanTableRenderer prints bootstrap plans as a table.
type PlanTableRenderer struct {
	writer      io.Writer
	headerColor *color.Color
}

// NewPlanTableRenderer constructs a renderer writing to writer. Colored output
// is controlled by the process-wide color.NoColor setting.
func NewPlanTableRenderer(writer io.Writer) *PlanTableRenderer {
	return &PlanTableRenderer{writer: writer, headerColor: color.New(color.FgCyan, color.Bold)}
}

// Render prints the title line followed by one table row per command.
func (renderer *PlanTableRenderer) Render(projectName string, projectDirectory string, rows []PlanRow) error {
	if _, writeError := renderer.headerColor.Fprintln(renderer.writer, fmt.Sprintf(planTitleTemplateConstant, projectName, projectDirectory)); writeError != nil {
		return writeError
	}

	table := tablewriter.NewWriter(renderer.writer)
	table.SetHeader([]string{planHeaderStepConstant, planHeaderNameConstant, planHeaderDescriptionConstant, planHeaderCommandConstant})
	table.SetBorder(true)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, row := range rows {
		table.Append([]string{strconv.Itoa(row.StepNumber), row.StepName, row.Description, row.CommandLine})
	}
	table.Render()
	return nil
}
