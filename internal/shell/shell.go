// Package shell holds the per-session state of the discovery UI and the
// rules that keep it consistent: which fetch runs when a dependency
// changes, how the visible list is derived from the search term, and how
// aggregate ratings are computed from the full review set.
package shell

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"triplog/internal/auth"
	"triplog/internal/store"
)

// Shell owns the cross-cutting mutable state of one browser session.
// Each state slice is written by exactly one flow; selection-scoped
// fetches are tagged with the selection generation at issue time and
// discarded if the selection moved on before they resolved.
type Shell struct {
	store   store.Storage
	watcher *auth.Watcher
	logger  *zap.SugaredLogger

	mu                sync.Mutex
	currentUser       *auth.Identity
	restaurants       []store.Restaurant
	allReviews        []store.Trip
	selected          *store.Restaurant
	reviews           []store.Trip
	comments          []store.Comment
	searchTerm        string
	selectedImage     string
	addRestaurantOpen bool
	generation        uint64
	sub               *auth.Subscription
}

func New(st store.Storage, watcher *auth.Watcher, logger *zap.SugaredLogger) *Shell {
	return &Shell{
		store:   st,
		watcher: watcher,
		logger:  logger,
	}
}

// Start subscribes to auth state changes and loads the restaurant list and
// the full review set. The two fetches are independent and run
// concurrently; either failing leaves its slice empty and the shell usable.
func (s *Shell) Start(ctx context.Context) {
	s.sub = s.watcher.Subscribe(func(ev auth.Event) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if ev.Type == auth.SignedOut {
			s.currentUser = nil
			return
		}
		s.currentUser = ev.Identity
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.refreshRestaurants(ctx)
	}()
	go func() {
		defer wg.Done()
		s.refreshAllReviews(ctx)
	}()
	wg.Wait()
}

// Close releases the auth subscription.
func (s *Shell) Close() {
	if s.sub != nil {
		s.sub.Unsubscribe()
	}
}

// Watcher exposes the session's auth state hub.
func (s *Shell) Watcher() *auth.Watcher { return s.watcher }

func (s *Shell) refreshRestaurants(ctx context.Context) {
	restaurants, err := s.store.Restaurants.List(ctx)
	if err != nil {
		s.logger.Errorw("error fetching restaurants", "error", err)
		return
	}
	s.mu.Lock()
	s.restaurants = restaurants
	s.mu.Unlock()
}

func (s *Shell) refreshAllReviews(ctx context.Context) {
	trips, err := s.store.Trips.ListAll(ctx)
	if err != nil {
		s.logger.Errorw("error fetching all reviews", "error", err)
		return
	}
	s.mu.Lock()
	s.allReviews = trips
	s.mu.Unlock()
}

// SelectByID enters detail view for the restaurant with the given id.
// It reports false when the id is not in the loaded list.
func (s *Shell) SelectByID(ctx context.Context, id string) bool {
	s.mu.Lock()
	var target *store.Restaurant
	for i := range s.restaurants {
		if s.restaurants[i].ID == id {
			r := s.restaurants[i]
			target = &r
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return false
	}
	s.selected = target
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	s.fetchReviews(ctx, target.ID, gen)
	return true
}

// fetchReviews replaces the selection-scoped review list, then chains the
// dependent comment fetch for the newest review. Results from a fetch
// issued for a superseded selection are dropped.
func (s *Shell) fetchReviews(ctx context.Context, restaurantID string, gen uint64) {
	trips, err := s.store.Trips.ListByRestaurant(ctx, restaurantID)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.logger.Errorw("error fetching reviews", "restaurant_id", restaurantID, "error", err)
		s.mu.Unlock()
		return
	}
	s.reviews = trips
	var tripID string
	if len(trips) > 0 {
		tripID = trips[0].ID
	} else {
		s.comments = nil
	}
	s.mu.Unlock()

	if tripID != "" {
		s.fetchComments(ctx, tripID, gen)
	}
}

func (s *Shell) fetchComments(ctx context.Context, tripID string, gen uint64) {
	comments, err := s.store.Comments.ListByTrip(ctx, tripID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	if err != nil {
		s.logger.Errorw("error fetching comments", "trip_id", tripID, "error", err)
		return
	}
	s.comments = comments
}

// ClearSelection returns to list view: selection, its reviews and
// comments, and any open image modal are all cleared.
func (s *Shell) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
	s.generation++
	s.reviews = nil
	s.comments = nil
	s.selectedImage = ""
}

func (s *Shell) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
}

func (s *Shell) SearchTerm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchTerm
}

// Visible filters the restaurant list by case-insensitive substring match
// of the search term against name, cuisine type, or address. An empty term
// matches everything; order is preserved.
func (s *Shell) Visible() []store.Restaurant {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := strings.ToLower(s.searchTerm)
	if term == "" {
		return append([]store.Restaurant(nil), s.restaurants...)
	}

	var visible []store.Restaurant
	for _, r := range s.restaurants {
		if strings.Contains(strings.ToLower(r.Name), term) ||
			strings.Contains(strings.ToLower(r.CuisineType), term) ||
			strings.Contains(strings.ToLower(r.Address), term) {
			visible = append(visible, r)
		}
	}
	return visible
}

// AverageRating is the arithmetic mean of ratings across every loaded
// review for the restaurant, 0 when it has none. It reads the full review
// set, not the selection-scoped list.
func (s *Shell) AverageRating(restaurantID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum, count := 0, 0
	for _, t := range s.allReviews {
		if t.RestaurantID == restaurantID {
			sum += t.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

func (s *Shell) ReviewCount(restaurantID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, t := range s.allReviews {
		if t.RestaurantID == restaurantID {
			count++
		}
	}
	return count
}

func (s *Shell) CurrentUser() *auth.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentUser
}

func (s *Shell) Selected() *store.Restaurant {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	r := *s.selected
	return &r
}

func (s *Shell) Reviews() []store.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]store.Trip(nil), s.reviews...)
}

func (s *Shell) Comments() []store.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]store.Comment(nil), s.comments...)
}

// TripLog returns the newest review of the selection, which the detail
// view treats as the restaurant's trip log.
func (s *Shell) TripLog() *store.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.reviews) == 0 {
		return nil
	}
	t := s.reviews[0]
	return &t
}

func (s *Shell) OpenImage(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return
	}
	s.selectedImage = uri
}

func (s *Shell) CloseImage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedImage = ""
}

func (s *Shell) SelectedImage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedImage
}

func (s *Shell) OpenAddRestaurant() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addRestaurantOpen = true
}

func (s *Shell) AddRestaurantOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addRestaurantOpen
}

// RestaurantAdded runs the targeted re-fetches after a successful
// AddRestaurant submission and closes the modal.
func (s *Shell) RestaurantAdded(ctx context.Context) {
	s.refreshRestaurants(ctx)
	s.refreshAllReviews(ctx)
	s.mu.Lock()
	s.addRestaurantOpen = false
	s.mu.Unlock()
}

// ReviewAdded re-fetches the selection's reviews and the aggregate set
// after a successful review submission.
func (s *Shell) ReviewAdded(ctx context.Context) {
	s.refreshAllReviews(ctx)

	s.mu.Lock()
	if s.selected == nil {
		s.mu.Unlock()
		return
	}
	id := s.selected.ID
	gen := s.generation
	s.mu.Unlock()

	s.fetchReviews(ctx, id, gen)
}

// CommentAdded re-fetches the trip log's comments after a successful
// comment submission.
func (s *Shell) CommentAdded(ctx context.Context) {
	s.mu.Lock()
	if len(s.reviews) == 0 {
		s.mu.Unlock()
		return
	}
	tripID := s.reviews[0].ID
	gen := s.generation
	s.mu.Unlock()

	s.fetchComments(ctx, tripID, gen)
}
