package story

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ivlev/scroll2video/internal/progress"
)

// Validate checks a story once at load time so the frame path can assume
// well-formed schedules.
func (s *Story) Validate() error {
	var errs []error
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid size %dx%d", s.Width, s.Height))
	}
	if s.FPS <= 0 {
		errs = append(errs, fmt.Errorf("invalid fps %d", s.FPS))
	}
	if s.Assets.Count < 0 {
		errs = append(errs, fmt.Errorf("invalid asset count %d", s.Assets.Count))
	}
	if len(s.Sections) == 0 {
		errs = append(errs, errors.New("no sections"))
	}

	for i, sec := range s.Sections {
		if !slices.Contains(Kinds, sec.Kind) {
			errs = append(errs, fmt.Errorf("section %d: unknown kind %q", i, sec.Kind))
		}
		if sec.Height <= 0 {
			errs = append(errs, fmt.Errorf("section %d (%s): height must be positive", i, sec.Kind))
		}
		for _, c := range sec.Captions {
			if c.Key == "" {
				errs = append(errs, fmt.Errorf("section %d: caption without key", i))
			}
			if len(c.At) == 0 && len(c.Opacity) == 0 {
				continue
			}
			if len(c.At) != len(c.Opacity) {
				errs = append(errs, fmt.Errorf("section %d caption %q: %d breakpoints but %d values", i, c.Key, len(c.At), len(c.Opacity)))
				continue
			}
			if err := progress.New(c.At, c.Opacity).Validate(); err != nil {
				errs = append(errs, fmt.Errorf("section %d caption %q: %w", i, c.Key, err))
			}
		}
	}

	for i := 1; i < len(s.Timeline); i++ {
		if s.Timeline[i].Time <= s.Timeline[i-1].Time {
			errs = append(errs, fmt.Errorf("timeline keyframe %d: time %.2f is not after %.2f", i, s.Timeline[i].Time, s.Timeline[i-1].Time))
		}
	}
	for i, k := range s.Timeline {
		if k.Scroll < 0 {
			errs = append(errs, fmt.Errorf("timeline keyframe %d: negative scroll", i))
		}
	}

	return errors.Join(errs...)
}
