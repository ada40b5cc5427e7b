package report

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nPaBwaYT/desencoder/cripta"
)

func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

// KeyTable renders every round of a key schedule: the rotated halves and the
// resulting round key.
func KeyTable(trace *cripta.KeyScheduleTrace) string {
	t := newTable("Key schedule for " + Hex(trace.Key))
	t.AppendHeader(table.Row{"Round", "Shift", "C", "D", "K"})
	t.AppendRow(table.Row{
		0, "", Binary(trace.C0, 28), Binary(trace.D0, 28), "",
	})
	for _, r := range trace.Rounds {
		t.AppendRow(table.Row{
			r.Round, r.Shift, Binary(r.C, 28), Binary(r.D, 28),
			Groups(r.Key, 48, 6),
		})
	}
	return t.Render()
}

// RoundTable renders every Feistel round of an encryption.
func RoundTable(trace *cripta.EncryptionTrace) string {
	t := newTable("Encryption of " + Hex(trace.Block))
	t.AppendHeader(table.Row{
		"Round", "E(R) xor K", "S-boxes", "f", "L", "R",
	})
	t.AppendRow(table.Row{
		0, "", "", "", Binary(trace.Left0, 32), Binary(trace.Right0, 32),
	})
	for _, r := range trace.Rounds {
		t.AppendRow(table.Row{
			r.Round, Groups(r.F.Mixed, 48, 6),
			Groups(r.F.Substituted, 32, 4), Binary(r.Function, 32),
			Binary(r.Left, 32), Binary(r.Right, 32),
		})
	}
	t.AppendFooter(table.Row{
		"IP", Binary(trace.Permuted, 64), "", "FP",
		Binary(trace.Ciphertext, 64), "",
	})
	return t.Render()
}
