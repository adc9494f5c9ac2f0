package mptt

import "nestquiz/local-app/internal/model"

// DefaultOptionText is the text of the option a node receives when it becomes a
// choice question.
const DefaultOptionText = "Option 1"

// DefaultOptions returns the options a node of type t starts with: one incorrect
// option for choice questions and none otherwise.
func DefaultOptions(t model.NodeType) []model.Option {
	if !t.HasOptions() {
		return []model.Option{}
	}
	return []model.Option{NewOption(DefaultOptionText, false)}
}

// ConformOptions applies the answer option rules to d. Nodes whose type has no
// options lose them, and a single-choice question keeps only its first correct option.
func ConformOptions(d model.NodeData) model.NodeData {
	if !d.Type.HasOptions() {
		d.Options = []model.Option{}
		return d
	}
	d.Options = cloneOptions(d.Options)
	if d.Options == nil {
		d.Options = []model.Option{}
	}
	if d.Type == model.NodeSingleChoice {
		seen := false
		for i := range d.Options {
			if d.Options[i].Correct && seen {
				d.Options[i].Correct = false
			}
			seen = seen || d.Options[i].Correct
		}
	}
	return d
}

// MarkCorrect returns options with optionID marked correct. For a single-choice
// question every other option becomes incorrect; otherwise the option is toggled.
func MarkCorrect(t model.NodeType, options []model.Option, optionID string) []model.Option {
	out := cloneOptions(options)
	for i := range out {
		switch {
		case out[i].ID == optionID && t == model.NodeSingleChoice:
			out[i].Correct = true
		case out[i].ID == optionID:
			out[i].Correct = !out[i].Correct
		case t == model.NodeSingleChoice:
			out[i].Correct = false
		}
	}
	return out
}

// RemoveOption returns options without optionID.
func RemoveOption(options []model.Option, optionID string) []model.Option {
	out := make([]model.Option, 0, len(options))
	for _, o := range options {
		if o.ID != optionID {
			out = append(out, o)
		}
	}
	return out
}
