package grading

import "github.com/patrickmn/go-cache"

// Cache-specific helpers are isolated here so service.go can focus on orchestration.

func (s *Service) getCachedSubmission(id string) (Submission, bool) {
	cached, ok := s.results.Get(id)
	if !ok {
		return Submission{}, false
	}
	submission, ok := cached.(Submission)
	return submission, ok
}

func (s *Service) setCachedSubmission(submission Submission) {
	s.results.Set(submission.ID, submission, cache.DefaultExpiration)
}
