package psychtest

import "errors"

var (
	ErrNotFound        = errors.New("psych test not found")
	ErrInvalidTest     = errors.New("test needs a name, questions with options, and scoring bands")
	ErrAnswerCount     = errors.New("answer count does not match question count")
	ErrInvalidAnswer   = errors.New("answer is not one of the question's options")
	ErrScoreOutOfRange = errors.New("score is not covered by any scoring band")
)
