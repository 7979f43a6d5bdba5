package service

import (
	"fmt"
	"time"
)

type PassStats struct {
	Pass      string
	Attempted int
	Succeeded int
	Failed    int
	Elapsed   time.Duration
}

func (s PassStats) String() string {
	return fmt.Sprintf("%s: attempted=%d succeeded=%d failed=%d elapsed=%s",
		s.Pass, s.Attempted, s.Succeeded, s.Failed, s.Elapsed.Round(time.Millisecond))
}
