// Package dialog implements the multi-step conversation engine.
package dialog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/dkotenko/shopbot/internal/domain"
	"github.com/dkotenko/shopbot/internal/geo"
	"github.com/dkotenko/shopbot/internal/geocode"
	"github.com/dkotenko/shopbot/internal/session"
	"github.com/dkotenko/shopbot/internal/store"
)

// Reply is what the engine wants sent back to the user. Choices, when
// present, are suggested quick-reply values for the next input.
type Reply struct {
	Text    string
	Choices []string
}

// Engine drives the addshop and findshops dialogs. One inbound message
// advances a session by exactly one step or terminates it.
type Engine struct {
	repo        store.Repository
	geocoder    geocode.Resolver
	sessions    *session.Store
	admins      map[int64]struct{}
	searchLimit int
}

// NewEngine creates a conversation engine. adminIDs are the chat IDs allowed
// to trigger the addshop dialog; searchLimit caps findshops result lists.
func NewEngine(repo store.Repository, geocoder geocode.Resolver, sessions *session.Store, adminIDs []int64, searchLimit int) *Engine {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Engine{
		repo:        repo,
		geocoder:    geocoder,
		sessions:    sessions,
		admins:      admins,
		searchLimit: searchLimit,
	}
}

// IsAdmin reports whether the chat may register shops.
func (e *Engine) IsAdmin(chatID int64) bool {
	_, ok := e.admins[chatID]
	return ok
}

// Welcome returns the greeting for the start trigger. No session is created.
func (e *Engine) Welcome(chatID int64) Reply {
	text := msgWelcome
	if e.IsAdmin(chatID) {
		text += msgWelcomeAdmin
	}
	return Reply{Text: text}
}

// StartAddShop begins the addshop dialog. Non-admins are rejected before any
// session is created; for admins any in-flight session is replaced.
func (e *Engine) StartAddShop(chatID int64) Reply {
	if !e.IsAdmin(chatID) {
		slog.Info("Rejected addshop trigger from non-admin", "chat_id", chatID)
		return Reply{Text: msgUnauthorized}
	}
	e.sessions.Put(chatID, domain.NewSession(domain.ActionAddShop))
	return Reply{Text: msgPromptName}
}

// StartFindShops begins the findshops dialog for any caller, replacing any
// in-flight session.
func (e *Engine) StartFindShops(chatID int64) Reply {
	e.sessions.Put(chatID, domain.NewSession(domain.ActionFindShops))
	return Reply{Text: msgPromptSearchZip}
}

// CancelDialog abandons the chat's active dialog, if any.
func (e *Engine) CancelDialog(chatID int64) Reply {
	if e.sessions.Get(chatID) == nil {
		return Reply{Text: msgNothingActive}
	}
	e.sessions.Delete(chatID)
	return Reply{Text: msgCanceled}
}

// HandleText feeds one message into the chat's active dialog. The second
// return value is false when the chat has no session, in which case the
// message is ignored by the caller.
//
// Any failure while processing a step is terminal: the session is destroyed,
// the cause is logged, and the user gets a generic failure message.
func (e *Engine) HandleText(ctx context.Context, chatID int64, text string) (reply Reply, handled bool) {
	sess := e.sessions.Get(chatID)
	if sess == nil {
		return Reply{}, false
	}
	handled = true

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Dialog step panicked",
				"chat_id", chatID, "action", sess.Action.String(), "step", sess.Step.String(), "panic", r)
			e.sessions.Delete(chatID)
			reply = Reply{Text: msgFailure}
		}
	}()

	var err error
	switch sess.Action {
	case domain.ActionAddShop:
		reply, err = e.addShopStep(ctx, chatID, sess, text)
	case domain.ActionFindShops:
		reply, err = e.findShopsStep(ctx, chatID, sess, text)
	default:
		err = fmt.Errorf("unknown action %d", sess.Action)
	}
	if err != nil {
		slog.Error("Dialog step failed",
			"chat_id", chatID, "action", sess.Action.String(), "step", sess.Step.String(), "error", err)
		e.sessions.Delete(chatID)
		return Reply{Text: msgFailure}, true
	}
	return reply, true
}

func (e *Engine) addShopStep(ctx context.Context, chatID int64, sess *domain.Session, text string) (Reply, error) {
	switch sess.Step {
	case domain.StepName:
		sess.Draft.Name = text
		sess.Advance()
		return Reply{Text: msgPromptStreet}, nil

	case domain.StepStreet:
		sess.Draft.Street = text
		sess.Advance()
		return Reply{Text: msgPromptCity}, nil

	case domain.StepCity:
		sess.Draft.City = text
		sess.Advance()
		return Reply{Text: msgPromptState}, nil

	case domain.StepState:
		sess.Draft.State = text
		sess.Advance()
		return Reply{Text: msgPromptZip}, nil

	case domain.StepZip:
		zip := strings.TrimSpace(text)
		coord, ok := e.resolveZip(ctx, chatID, zip)
		if !ok {
			return Reply{Text: msgInvalidZip}, nil
		}
		sess.Draft.Zip = zip
		sess.Draft.Lat = coord.Lat
		sess.Draft.Lon = coord.Lon
		sess.Advance()
		return Reply{Text: msgPromptShopType}, nil

	case domain.StepType:
		shop := sess.Draft.Shop(domain.NormalizeShopType(text))
		if err := e.repo.InsertShop(ctx, shop); err != nil {
			return Reply{}, fmt.Errorf("insert shop: %w", err)
		}
		e.sessions.Delete(chatID)
		slog.Info("Shop registered", "shop_id", shop.ID, "type", shop.Type, "zip", shop.Zip)
		return Reply{Text: fmt.Sprintf(msgShopSaved, shop.Name)}, nil
	}
	return Reply{}, fmt.Errorf("addshop: unexpected step %s", sess.Step)
}

func (e *Engine) findShopsStep(ctx context.Context, chatID int64, sess *domain.Session, text string) (Reply, error) {
	switch sess.Step {
	case domain.StepZip:
		zip := strings.TrimSpace(text)
		coord, ok := e.resolveZip(ctx, chatID, zip)
		if !ok {
			return Reply{Text: msgInvalidZip}, nil
		}
		sess.Query.Zip = zip
		sess.Query.Lat = coord.Lat
		sess.Query.Lon = coord.Lon
		sess.Advance()
		return Reply{Text: msgPromptRadius, Choices: radiusChoices}, nil

	case domain.StepRadius:
		// Unparseable input leaves the sentinel radius in place, so the
		// search completes with an empty result instead of an error.
		if miles, ok := parseRadius(text); ok {
			sess.Query.RadiusMiles = miles
		}
		sess.Advance()
		return Reply{Text: msgPromptFindType}, nil

	case domain.StepType:
		shopType := domain.NormalizeShopType(text)
		shops, err := e.repo.ShopsByType(ctx, shopType)
		if err != nil {
			return Reply{}, fmt.Errorf("query shops by type: %w", err)
		}

		hits := rankShops(shops, sess.Query, e.searchLimit)
		e.sessions.Delete(chatID)
		slog.Info("Shop search completed",
			"chat_id", chatID, "type", shopType, "zip", sess.Query.Zip,
			"radius_miles", sess.Query.RadiusMiles, "candidates", len(shops), "results", len(hits))

		if len(hits) == 0 {
			return Reply{Text: msgNoResults}, nil
		}
		return Reply{Text: renderHits(hits)}, nil
	}
	return Reply{}, fmt.Errorf("findshops: unexpected step %s", sess.Step)
}

// resolveZip geocodes a ZIP for the current step. On any non-Found outcome
// the session is destroyed: an unresolvable ZIP cancels the dialog rather
// than re-prompting.
func (e *Engine) resolveZip(ctx context.Context, chatID int64, zip string) (domain.Coordinate, bool) {
	result := e.geocoder.Resolve(ctx, zip)
	switch result.Kind {
	case geocode.Found:
		return result.Coordinate, true
	case geocode.TransportError:
		slog.Warn("Geocode lookup failed", "chat_id", chatID, "zip", zip, "error", result.Err)
	default:
		slog.Info("ZIP not resolvable", "chat_id", chatID, "zip", zip)
	}
	e.sessions.Delete(chatID)
	return domain.Coordinate{}, false
}

// parseRadius accepts any integer miles value. The presented choices are a
// suggestion, not a constraint.
func parseRadius(text string) (float64, bool) {
	miles, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	return float64(miles), true
}

// rankShops filters candidates to the query radius (inclusive), sorts them
// by ascending distance, and truncates to limit.
func rankShops(shops []domain.Shop, query domain.SearchQuery, limit int) []domain.SearchHit {
	var hits []domain.SearchHit
	for _, shop := range shops {
		d := geo.DistanceMiles(query.Lat, query.Lon, shop.Lat, shop.Lon)
		if d <= query.RadiusMiles {
			hits = append(hits, domain.SearchHit{Shop: shop, DistanceMiles: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].DistanceMiles < hits[j].DistanceMiles
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}
