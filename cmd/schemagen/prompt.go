package main

import (
	"errors"
	"slices"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// rootSelector picks the root types to generate from the catalog roots.
// defaults are preselected.
type rootSelector func(options, defaults []string) ([]string, error)

var errAborted = errors.New("selection aborted")

func surveySelector(options, defaults []string) ([]string, error) {
	var selected []string
	prompt := &survey.MultiSelect{
		Message:  "Root types to generate:",
		Options:  options,
		PageSize: 15,
	}
	if preselected := knownOptions(options, defaults); len(preselected) > 0 {
		prompt.Default = preselected
	}
	if err := survey.AskOne(prompt, &selected, survey.WithValidator(survey.Required)); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return nil, errAborted
		}
		return nil, err
	}
	return selected, nil
}

// knownOptions keeps the defaults present in options; survey rejects unknown
// default values.
func knownOptions(options, defaults []string) []string {
	var out []string
	for _, name := range defaults {
		if slices.Contains(options, name) && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}
