// Package protocol defines the wire contract between a transport connection
// and the game/registry core: the request/response payloads for each
// operation in the external interface, and the push events a table emits.
package protocol

import "github.com/paschalwilson9-ops/mitsukis-room/internal/deck"

// Request is the tagged envelope a connection sends for every operation.
// Amount and Action are only meaningful for the operations that use them;
// Token is omitted only for join, tables and history.
type Request struct {
	Op      string `json:"op"`
	Token   string `json:"token,omitempty"`
	Name    string `json:"name,omitempty"`
	BuyIn   int    `json:"buyIn,omitempty"`
	Action  string `json:"action,omitempty"`
	Amount  int    `json:"amount,omitempty"`
	TableID string `json:"tableId,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// Response is the tagged envelope returned for a Request. Only the payload
// fields that belong to Request.Op are populated (for example Ok and Tag
// for action, Ok and Stack for leave and rebuy).
type Response struct {
	Op      string      `json:"op"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Welcome *Welcome    `json:"welcome,omitempty"`
	State   *PrivateView `json:"state,omitempty"`
	Ok      bool        `json:"ok,omitempty"`
	Tag     string      `json:"tag,omitempty"`
	Stack   int         `json:"stack,omitempty"`
	Tables  []PublicView `json:"tables,omitempty"`
	History []HandRecord `json:"history,omitempty"`
}

// ErrorBody is the {kind, humanMessage} shape every failed operation
// returns, per the error handling design.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Welcome is the join operation's success payload.
type Welcome struct {
	Token   string `json:"token"`
	Seat    int    `json:"seat"`
	TableID string `json:"tableId"`
}

// PublicSeat is one seat's publicly visible information, safe to send to
// every observer regardless of which seat they hold.
type PublicSeat struct {
	Name             string `json:"name"`
	Stack            int    `json:"stack"`
	Status           string `json:"status"`
	CurrentBet       int    `json:"currentBet"`
	TotalBetThisHand int    `json:"totalBetThisHand"`
}

// PublicView is the no-hole-cards view of a table.
type PublicView struct {
	ID              string        `json:"id"`
	HandNumber      int           `json:"handNumber"`
	Phase           string        `json:"phase"`
	DealerSeat      int           `json:"dealerSeat"`
	CurrentActor    int           `json:"currentActor"`
	CurrentBetLevel int           `json:"currentBetLevel"`
	MinRaise        int           `json:"minRaise"`
	Pot             int           `json:"pot"`
	Community       []deck.Card   `json:"community"`
	Seats           []*PublicSeat `json:"seats"`
}

// PrivateView extends PublicView with the requesting player's own hole
// cards and seat index; nothing else in the payload differs per viewer.
type PrivateView struct {
	PublicView
	YourSeat      int         `json:"yourSeat"`
	YourHoleCards []deck.Card `json:"yourHoleCards"`
}

// ValidAction describes one action a player may currently take.
type ValidAction struct {
	Kind     string `json:"kind"`
	MinTotal int    `json:"minTotal,omitempty"`
	MaxTotal int    `json:"maxTotal,omitempty"`
}

// PotResult records how one pot layer paid out, for showdown events and
// hand history records.
type PotResult struct {
	Label    string      `json:"label"`
	Amount   int         `json:"amount"`
	Eligible []int       `json:"eligible"`
	Winners  []int       `json:"winners"`
	Payout   map[int]int `json:"payout"`
}

// ContenderResult is one surviving player's showdown detail.
type ContenderResult struct {
	Seat     int         `json:"seat"`
	HoleCard [2]deck.Card `json:"holeCards"`
	Category string      `json:"category"`
}

// HandRecord is one completed hand, as returned by the history operation.
type HandRecord struct {
	HandNumber  int               `json:"handNumber"`
	Community   []deck.Card       `json:"community"`
	Contenders  []ContenderResult `json:"contenders,omitempty"`
	Pots        []PotResult       `json:"pots"`
	Uncontested bool              `json:"uncontested"`
}

// Event is the tagged envelope for every push event a table emits. Only the
// fields relevant to Type are populated; the envelope is deliberately flat
// rather than per-type structs so one connection fan-out path can marshal
// any event without a type switch.
type Event struct {
	Type       string        `json:"type"`
	TableID    string        `json:"tableId"`
	HandNumber int           `json:"handNumber,omitempty"`
	Seat       int           `json:"seat,omitempty"`
	Name       string        `json:"name,omitempty"`
	Token      string        `json:"token,omitempty"`
	Stack      int           `json:"stack,omitempty"`
	SmallBlind int           `json:"smallBlind,omitempty"`
	BigBlind   int           `json:"bigBlind,omitempty"`
	SBSeat     int           `json:"sbSeat,omitempty"`
	BBSeat     int           `json:"bbSeat,omitempty"`
	Pot        int           `json:"pot,omitempty"`
	CurrentBetLevel int      `json:"currentBetLevel,omitempty"`
	PlayerBet  int           `json:"playerBet,omitempty"`
	ToCall     int           `json:"toCall,omitempty"`
	MinRaise   int           `json:"minRaise,omitempty"`
	TimeBank   int           `json:"timeBankSeconds,omitempty"`
	Valid      []ValidAction `json:"validActions,omitempty"`
	Action     string        `json:"action,omitempty"`
	Amount     int           `json:"amount,omitempty"`
	Street     string        `json:"street,omitempty"`
	Community  []deck.Card   `json:"community,omitempty"`
	Result     *HandRecord   `json:"result,omitempty"`
	Narration  string        `json:"narration,omitempty"`
}

const (
	EventPlayerJoined   = "player_joined"
	EventPlayerLeft     = "player_left"
	EventBlindsPosted   = "blinds_posted"
	EventCardsDealt     = "cards_dealt"
	EventActionOn       = "action_on"
	EventPlayerAction   = "player_action"
	EventCommunityCards = "community_cards"
	EventShowdown       = "showdown"
	EventHandComplete   = "hand_complete"
	EventMitsuki        = "mitsuki"
)
