package services

import (
	"context"

	"github.com/sahilm/fuzzy"
	"github.com/xvierd/smokefree-cli/internal/logger"
	"github.com/xvierd/smokefree-cli/internal/ports"
)

// builtinTopics are served when the help center cannot be reached.
var builtinTopics = []ports.HelpTopic{
	{ID: 1, Category: "Getting started", Question: "How is my recovery calculated?",
		Answer: "Each body system recovers at its own rate over the first year after your quit date. Progress is capped at 100%."},
	{ID: 2, Category: "Getting started", Question: "How do I change my quit date?",
		Answer: "Run `smokefree quit set YYYY-MM-DD`. Leave the date out to quit right now."},
	{ID: 3, Category: "Cravings", Question: "What should I do during a craving?",
		Answer: "Most cravings pass within 5 to 10 minutes. Drink water, take a short walk or breathe slowly, then log it with `smokefree craving log`."},
	{ID: 4, Category: "Savings", Question: "How are my savings calculated?",
		Answer: "Cigarettes per day divided by cigarettes per pack, times the pack cost, for every smoke-free day. Set your habits with `smokefree habits set`."},
	{ID: 5, Category: "Account", Question: "How do I export my data?",
		Answer: "Run `smokefree export --format json`, yaml or csv."},
	{ID: 6, Category: "Account", Question: "Where is my data stored?",
		Answer: "Locally in ~/.smokefree/smokefree.db. The API token lives in your OS keyring."},
}

// HelpService serves and searches help-center articles.
type HelpService struct {
	api ports.RemoteAPI
}

// NewHelpService creates a help service. api may be nil.
func NewHelpService(api ports.RemoteAPI) *HelpService {
	return &HelpService{api: api}
}

// Topics returns the help articles, falling back to the built-in set.
func (s *HelpService) Topics(ctx context.Context) []ports.HelpTopic {
	if s.api != nil {
		topics, err := s.api.HelpTopics(ctx)
		if err == nil && len(topics) > 0 {
			return topics
		}
		if err != nil {
			logger.Debug("help center unavailable, using built-in topics", "err", err)
		}
	}
	return builtinTopics
}

// Search returns the topics matching query, best match first.
// An empty query returns every topic.
func (s *HelpService) Search(ctx context.Context, query string) []ports.HelpTopic {
	topics := s.Topics(ctx)
	if query == "" {
		return topics
	}

	haystack := make([]string, len(topics))
	for i, t := range topics {
		haystack[i] = t.Question + " " + t.Category
	}

	matches := fuzzy.Find(query, haystack)
	result := make([]ports.HelpTopic, 0, len(matches))
	for _, m := range matches {
		result = append(result, topics[m.Index])
	}
	return result
}
