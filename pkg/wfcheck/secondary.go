package wfcheck

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wfcheck/wfcheck/pkg/wftype"
)

// formatWarning renders one warning-bucket edge into its diagnostic text,
// per spec.md §4.E. Three shapes, in priority order:
//
//  1. Missing required secondaryFiles: a four-line diagnostic anchored at
//     sink, src id, src secondaryFiles, and sink secondaryFiles.
//  2. sink.NotConnected: suppressed if the sink is used_by_step, else a
//     "not an input parameter of" message naming the connected siblings.
//  3. Generic incompatible-type warning, with linkMerge/pickValue context
//     appended.
//
// An empty return means the warning should be dropped (the suppressed
// not_connected/used_by_step case).
func formatWarning(e edge) string {
	sinksf := sortedPatterns(e.sink.Type.Secondary, true)
	srcsf := sortedPatterns(e.src.Type.Secondary, false)
	missing := missingSubset(srcsf, sinksf)

	srcName := e.src.ShortName()
	sinkName := e.sink.ShortName()

	if len(missing) > 0 {
		msg1 := fmt.Sprintf("Parameter '%s' requires secondaryFiles %s but", sinkName, formatStringSlice(missing))
		msg3 := e.src.ref().Format(fmt.Sprintf("source '%s' does not provide those secondaryFiles.", srcName), "id")
		toolSrc := e.src.ToolEntry
		if toolSrc == nil {
			toolSrc = e.src.ref()
		}
		msg4 := toolSrc.Format(fmt.Sprintf("To resolve, add missing secondaryFiles patterns to definition of '%s' or", srcName), "secondaryFiles")
		toolSink := e.sink.ToolEntry
		if toolSink == nil {
			toolSink = e.sink.ref()
		}
		msg5 := toolSink.Format(fmt.Sprintf("mark missing secondaryFiles in definition of '%s' as optional.", sinkName), "secondaryFiles")
		return e.sink.ref().Format(fmt.Sprintf("%s\n%s", msg1, bullets([]string{msg3, msg4, msg5})), "")
	}

	if e.sink.Type.NotConnected {
		if e.sink.UsedByStep {
			return ""
		}
		step := stepOf(e)
		return e.sink.ref().Format(fmt.Sprintf("'%s' is not an input parameter of %s, expected %s",
			sinkName, step.Run, connectedSiblingNames(step)), "type")
	}

	msg := e.src.ref().Format(fmt.Sprintf("Source '%s' of type %s may be incompatible", srcName, describeType(e.src.Type)), "type") +
		"\n" + e.sink.ref().Format(fmt.Sprintf("  with sink '%s' of type %s", sinkName, describeType(e.sink.Type)), "type")
	if e.hasLinkMerge {
		msg += "\n" + e.sink.ref().Format(fmt.Sprintf("  source has linkMerge method %s", linkMergeString(e.linkMerge)), "")
	}
	if e.message != "" {
		msg += "\n" + e.sink.ref().Format("  "+e.message, "")
	}
	return msg
}

// formatException renders one exception-bucket edge, per spec.md §4.D/§7.
func formatException(e edge) string {
	msg := e.src.ref().Format(fmt.Sprintf("Source '%s' of type %s is incompatible", e.src.ShortName(), describeType(e.src.Type)), "type") +
		"\n" + e.sink.ref().Format(fmt.Sprintf("  with sink '%s' of type %s", e.sink.ShortName(), describeType(e.sink.Type)), "type")
	if e.message != "" {
		msg += "\n" + e.sink.ref().Format("  "+e.message, "")
	}
	if e.hasLinkMerge {
		msg += "\n" + e.sink.ref().Format(fmt.Sprintf("  source has linkMerge method %s", linkMergeString(e.linkMerge)), "")
	}
	return msg
}

func linkMergeString(l LinkMerge) string {
	switch l {
	case MergeNested:
		return "merge_nested"
	case MergeFlattened:
		return "merge_flattened"
	default:
		return "unknown"
	}
}

// stepOf resolves the step that declared e.sink, for NotConnectedSink
// diagnostics, via e.sink.OwningStep, set by the adapter.
func stepOf(e edge) *Step {
	if e.sink.OwningStep != nil {
		return e.sink.OwningStep
	}
	return &Step{}
}

func connectedSiblingNames(step *Step) string {
	var names []string
	for _, in := range step.Inputs {
		if !in.Type.NotConnected {
			names = append(names, in.ShortName())
		}
	}
	return strings.Join(names, ", ")
}

func sortedPatterns(secondary []wftype.SecondaryFile, requiredOnly bool) []string {
	var out []string
	for _, sf := range secondary {
		if requiredOnly && !sf.Required {
			continue
		}
		out = append(out, sf.Pattern)
	}
	sort.Strings(out)
	return out
}

// missingSubset returns the items in subset that are absent from fullset.
func missingSubset(fullset, subset []string) []string {
	present := make(map[string]bool, len(fullset))
	for _, s := range fullset {
		present[s] = true
	}
	var missing []string
	for _, s := range subset {
		if !present[s] {
			missing = append(missing, s)
		}
	}
	return missing
}

func formatStringSlice(ss []string) string {
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = "'" + s + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// bullets renders each line prefixed with two spaces, joined by newlines,
// matching the reference implementation's bullets() helper.
func bullets(lines []string) string {
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
