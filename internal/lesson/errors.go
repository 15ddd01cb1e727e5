package lesson

import "errors"

var (
	// ErrMissingTopic is returned when neither a topic nor source text was given.
	ErrMissingTopic = errors.New("topic or source content is required")

	// ErrNoPlan is returned when no subtopics could be planned.
	ErrNoPlan = errors.New("could not plan any subtopics")
)
