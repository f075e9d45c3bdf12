package wfcheck

// StaticCheck is the top-level entry point described in spec.md §2/§6. It
// builds the source index from workflow inputs and step outputs, enumerates
// every sink (step inputs and workflow outputs), applies the link-merge
// adapter per edge, runs the secondary-file and required-parameter checks,
// and returns the joined warning text (to be logged by the caller) plus a
// single error joining every accumulated exception — or nil on success.
func StaticCheck(workflowInputs, workflowOutputs, stepInputs, stepOutputs []*Parameter, paramToStep map[string]*Step) (warningText string, err error) {
	return StaticCheckWithOptions(workflowInputs, workflowOutputs, stepInputs, stepOutputs, paramToStep, DefaultOptions())
}

// StaticCheckWithOptions is StaticCheck bounded and tuned by opts — the
// CLI builds opts from internal/config so that CheckerConfig.StrictMode
// and MaxTypeDepth actually govern the assignability ladder instead of
// sitting unread.
func StaticCheckWithOptions(workflowInputs, workflowOutputs, stepInputs, stepOutputs []*Parameter, paramToStep map[string]*Step, opts Options) (warningText string, err error) {
	srcDict := buildSourceIndex(workflowInputs, stepOutputs)
	env := newPromotionEnvelope()

	stepWarnings, stepExceptions, err := EnumerateWithOptions(srcDict, stepInputs, paramToStep, env, opts)
	if err != nil {
		return "", err
	}
	outputWarnings, outputExceptions, err := EnumerateWithOptions(srcDict, workflowOutputs, paramToStep, env, opts)
	if err != nil {
		return "", err
	}

	warnings := NewWarningList()
	for _, w := range stepWarnings {
		warnings.Append(formatWarning(w))
	}
	for _, w := range outputWarnings {
		warnings.Append(formatWarning(w))
	}

	exceptions := &ExceptionList{}
	for _, e := range stepExceptions {
		exceptions.Append(formatException(e))
	}
	for _, e := range outputExceptions {
		exceptions.Append(formatException(e))
	}
	for _, msg := range RequiredParameterSweep(stepInputs) {
		exceptions.Append(msg)
	}

	return warnings.String(), exceptions.AsError()
}
