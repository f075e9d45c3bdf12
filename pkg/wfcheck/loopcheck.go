package wfcheck

// LoopCheck enforces spec.md §4.G: a step with loop must also declare
// when, and loop is incompatible with scatter on the same step. All
// violations are collected and raised together.
func LoopCheck(steps []*Step) error {
	var exceptions ExceptionList
	for _, step := range steps {
		if step.Loop == nil {
			continue
		}
		if step.When == nil {
			exceptions.Append(step.ref().Format(
				"The 'when' clause is mandatory when the 'loop' directive is defined.", "id"))
		}
		if step.Scatter != nil {
			exceptions.Append(step.ref().Format(
				"The 'loop' clause is not compatible with the 'scatter' directive.", "id"))
		}
	}
	return exceptions.AsError()
}

func (s *Step) ref() SourceRef {
	if s.Ref != nil {
		return s.Ref
	}
	return NullSourceRef{}
}
