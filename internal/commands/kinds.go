package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/okra-platform/crudgen/internal/naming"
	"github.com/okra-platform/crudgen/internal/orchestrator"
	"github.com/okra-platform/crudgen/internal/placement"
	"github.com/okra-platform/crudgen/internal/schema"
)

// DefaultKindsEntity is the entity used to show example paths.
const DefaultKindsEntity = "Product"

// Kinds prints every artifact kind with its paths in both folder families,
// followed by the field tag catalog.
func (c *Controller) Kinds(entity string) error {
	if entity == "" {
		entity = DefaultKindsEntity
	}
	conv, err := naming.Derive(entity)
	if err != nil {
		return err
	}

	kinds := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("KIND", "AREA", "DASHBOARD PATH", "SHARED PATH")
	for _, area := range orchestrator.Areas {
		for _, kind := range area.Kinds() {
			dashboard, err := placement.Resolve(kind, conv, false)
			if err != nil {
				return err
			}
			shared, err := placement.Resolve(kind, conv, true)
			if err != nil {
				return err
			}
			kinds.Row(string(kind), string(area), dashboard, shared)
		}
	}
	fmt.Fprintln(c.Out, kinds.String())

	tags := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TAG", "MONGOOSE", "TYPESCRIPT", "WIDGET", "CELL")
	for _, tag := range schema.Tags {
		m, err := schema.MappingFor(schema.Primitive{Tag: tag})
		if err != nil {
			return err
		}
		tags.Row(string(tag), m.Storage, m.TSType, m.Widget, m.Cell)
	}
	sel, err := schema.MappingFor(schema.Select{Options: []string{"A", "B"}})
	if err != nil {
		return err
	}
	tags.Row("SELECT#A, B", sel.Storage, sel.TSType, sel.Widget, sel.Cell)
	fmt.Fprintln(c.Out, tags.String())

	areas := make([]string, 0, len(orchestrator.Areas)+1)
	for _, a := range orchestrator.Areas {
		areas = append(areas, string(a))
	}
	areas = append(areas, string(orchestrator.AreaAll))
	fmt.Fprintf(c.Out, "areas: %s\n", strings.Join(areas, ", "))
	return nil
}
