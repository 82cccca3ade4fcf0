package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/conectarapak/conectar/internal/ai"
	"github.com/conectarapak/conectar/internal/models"
	"github.com/google/uuid"
)

const ResearchUnavailableMessage = "El servicio de investigación no está disponible en este momento. Inténtalo nuevamente más tarde."

var (
	ErrResearchQueryEmpty = errors.New("research query must not be empty")
	ErrResearchSuperseded = errors.New("research result superseded by a newer query")
)

// ResearchStore is the durable owner of the saved-research collection. PutAll
// is an idempotent full overwrite; GetAll degrades to an empty collection on
// absence.
type ResearchStore interface {
	GetAll() ([]models.SavedResearch, error)
	PutAll(records []models.SavedResearch) error
}

type ResearchResult struct {
	Text        string                  `json:"text"`
	Sources     []models.ResearchSource `json:"sources"`
	Unavailable bool                    `json:"unavailable,omitempty"`
}

// ResearchLibrary keeps an in-memory mirror of the persisted collection,
// hydrated once at construction and kept write-through on every mutation.
type ResearchLibrary struct {
	mu         sync.Mutex
	store      ResearchStore
	generator  ai.Generator
	mirror     []models.SavedResearch
	lastStamp  int64
	generation uint64
	now        func() time.Time
	newID      func() string
}

func NewResearchLibrary(store ResearchStore, generator ai.Generator) *ResearchLibrary {
	if generator == nil {
		generator = ai.Disabled{}
	}

	library := &ResearchLibrary{
		store:     store,
		generator: generator,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	library.hydrate()
	return library
}

func (library *ResearchLibrary) hydrate() {
	records, err := library.store.GetAll()
	if err != nil || records == nil {
		records = []models.SavedResearch{}
	}

	kept := records[:0]
	for _, record := range records {
		if record.ID == "" || record.Query == "" {
			continue
		}
		kept = append(kept, record)
		if record.Timestamp > library.lastStamp {
			library.lastStamp = record.Timestamp
		}
	}
	sortNewestFirst(kept)

	library.mu.Lock()
	library.mirror = kept
	library.mu.Unlock()
}

// Query forwards the literal user question to the generative service. A
// failed call yields the unavailable sentinel, never an error; a result that
// settles after a newer query started is discarded with ErrResearchSuperseded.
func (library *ResearchLibrary) Query(ctx context.Context, question string, systemInstruction string) (ResearchResult, error) {
	if strings.TrimSpace(question) == "" {
		return ResearchResult{}, ErrResearchQueryEmpty
	}

	library.mu.Lock()
	library.generation++
	issued := library.generation
	library.mu.Unlock()

	text, citations, err := library.generator.GenerateText(ctx, question, systemInstruction, nil)

	library.mu.Lock()
	current := library.generation
	library.mu.Unlock()
	if issued != current {
		return ResearchResult{}, ErrResearchSuperseded
	}

	if err != nil {
		return ResearchResult{Text: ResearchUnavailableMessage, Sources: []models.ResearchSource{}, Unavailable: true}, nil
	}

	sources := make([]models.ResearchSource, 0, len(citations))
	for _, citation := range citations {
		sources = append(sources, models.ResearchSource{
			Web: &models.WebSource{URI: citation.URI, Title: citation.Title},
		})
	}
	return ResearchResult{Text: text, Sources: sources}, nil
}

// Save appends a new record with a fresh id and a timestamp that never moves
// backwards within a process. Duplicate query text is allowed; the id is the
// only dedup key.
func (library *ResearchLibrary) Save(query string, result ResearchResult) (models.SavedResearch, error) {
	if strings.TrimSpace(query) == "" {
		return models.SavedResearch{}, ErrResearchQueryEmpty
	}

	library.mu.Lock()
	defer library.mu.Unlock()

	stamp := library.now().UnixMilli()
	if stamp <= library.lastStamp {
		stamp = library.lastStamp + 1
	}

	record := models.SavedResearch{
		ID:        library.newID(),
		Query:     query,
		Text:      result.Text,
		Sources:   result.Sources,
		Timestamp: stamp,
	}
	if record.Sources == nil {
		record.Sources = []models.ResearchSource{}
	}

	updated := make([]models.SavedResearch, 0, len(library.mirror)+1)
	updated = append(updated, record)
	updated = append(updated, library.mirror...)

	if err := library.store.PutAll(updated); err != nil {
		return models.SavedResearch{}, err
	}

	library.mirror = updated
	library.lastStamp = stamp
	return record, nil
}

// Delete removes the record from mirror and store. Deleting an absent id is
// a no-op.
func (library *ResearchLibrary) Delete(id string) error {
	library.mu.Lock()
	defer library.mu.Unlock()

	updated := make([]models.SavedResearch, 0, len(library.mirror))
	found := false
	for _, record := range library.mirror {
		if record.ID == id {
			found = true
			continue
		}
		updated = append(updated, record)
	}
	if !found {
		return nil
	}

	if err := library.store.PutAll(updated); err != nil {
		return err
	}

	library.mirror = updated
	return nil
}

// Recall is a pure lookup in the mirror.
func (library *ResearchLibrary) Recall(id string) (models.SavedResearch, bool) {
	library.mu.Lock()
	defer library.mu.Unlock()

	for _, record := range library.mirror {
		if record.ID == id {
			return record, true
		}
	}
	return models.SavedResearch{}, false
}

// List returns the saved records newest first.
func (library *ResearchLibrary) List() []models.SavedResearch {
	library.mu.Lock()
	defer library.mu.Unlock()

	listed := make([]models.SavedResearch, len(library.mirror))
	copy(listed, library.mirror)
	return listed
}

func sortNewestFirst(records []models.SavedResearch) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})
}
