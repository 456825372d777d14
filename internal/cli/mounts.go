package cli

import (
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/ttrash/tt/internal/trash"
)

// Mounts lists the mount points in the order trash lookups try them
func (c CLI) Mounts() error {
	registry, err := trash.Probe(c.mountTable)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(c.stdout)
	table.SetHeader([]string{"Mount point", "Source", "Type"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.AppendBulk(lo.Map(registry.MountPoints(), func(m trash.MountPoint, _ int) []string {
		return []string{m.Prefix, m.Name, m.FSType}
	}))
	table.Render()
	return nil
}
