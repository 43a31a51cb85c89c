package drafting

import (
	"fmt"
	"strings"
	"time"
)

// Fixed annex messages.
const (
	NoModifications = "(No se han detectado modificaciones en los campos principales)"
	NoNewClauses    = "(No se agregan cláusulas nuevas en este anexo)"
	MissingReason   = "(Por favor, complete el motivo)"
)

const annexRule = "========================================"

// AnnexHeader identifies the contract an annex amends.
type AnnexHeader struct {
	WorkerName string
	WorkerRUT  string
	Company    string
	Date       time.Time
	Reason     string
}

// ComposeAnnex renders the annex document for a change set: the header, one
// line per modified field (or NoModifications), then the added clauses (or
// NoNewClauses).
func ComposeAnnex(h AnnexHeader, cs ChangeSet) string {
	var sb strings.Builder

	reason := h.Reason
	if strings.TrimSpace(reason) == "" {
		reason = MissingReason
	}

	sb.WriteString("ANEXO AL CONTRATO DE TRABAJO\n")
	fmt.Fprintf(&sb, "TRABAJADOR: %s (RUT: %s)\n", h.WorkerName, h.WorkerRUT)
	fmt.Fprintf(&sb, "EMPRESA: %s\n", h.Company)
	fmt.Fprintf(&sb, "FECHA DEL ANEXO: %s\n\n", h.Date.Format("02-01-2006"))
	fmt.Fprintf(&sb, "MOTIVO DEL ANEXO: %s\n\n", reason)

	section(&sb, "1. MODIFICACIONES ACORDADAS")
	if len(cs.Changes) == 0 {
		sb.WriteString(NoModifications)
	} else {
		lines := make([]string, len(cs.Changes))
		for i, c := range cs.Changes {
			lines[i] = ChangeLine(c)
		}
		sb.WriteString(strings.Join(lines, "\n"))
	}
	sb.WriteString("\n\n")

	section(&sb, "2. NUEVAS CLÁUSULAS AÑADIDAS")
	if len(cs.AddedClauses) == 0 {
		sb.WriteString(NoNewClauses)
	} else {
		blocks := make([]string, len(cs.AddedClauses))
		for i, c := range cs.AddedClauses {
			blocks[i] = strings.ToUpper(c.Title) + ":\n" + c.Body
		}
		sb.WriteString(strings.Join(blocks, "\n\n"))
	}
	sb.WriteString("\n")

	return sb.String()
}

// ChangeLine renders a single change as an annex bullet. Amounts arrive
// already formatted as currency and are not quoted.
func ChangeLine(c Change) string {
	af, ok := LookupAmendable(c.Key)
	if !ok {
		return fmt.Sprintf("- El campo %s se modifica a: \"%s\" (anterior: \"%s\")", c.Label, c.New, c.Old)
	}
	if af.Numeric {
		return fmt.Sprintf("- %s a: %s (anterior: %s)", af.Phrase, c.New, c.Old)
	}
	return fmt.Sprintf("- %s a: \"%s\" (anterior: \"%s\")", af.Phrase, c.New, c.Old)
}

func section(sb *strings.Builder, title string) {
	sb.WriteString(annexRule + "\n")
	sb.WriteString(title + "\n")
	sb.WriteString(annexRule + "\n\n")
}
