// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/cinemood/internal/mood"
)

// LoadQuestions reads a puzzle question bank override from a YAML file.
// The file holds a top-level `questions` list in the same shape the API
// serves. The bank is validated the same way the embedded default is, so
// a bad override fails at startup rather than at scoring time.
func LoadQuestions(path string) (*mood.QuestionBank, []mood.Question, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, nil, fmt.Errorf("load questions file %s: %w", path, err)
	}

	var questions []mood.Question
	if err := k.UnmarshalWithConf("questions", &questions, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, nil, fmt.Errorf("unmarshal questions from %s: %w", path, err)
	}

	bank, err := mood.NewQuestionBank(questions)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid question bank in %s: %w", path, err)
	}
	return bank, questions, nil
}
