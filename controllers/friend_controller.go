package controllers

import (
	"net/http"

	"playdates_server/services"

	"github.com/gorilla/mux"
)

// FriendController exposes friendship operations.
type FriendController struct {
	Friends *services.FriendService
}

// NewFriendController initializes the friend controller.
func NewFriendController(friends *services.FriendService) *FriendController {
	return &FriendController{Friends: friends}
}

// SendRequest handles POST /api/friends/request.
func (c *FriendController) SendRequest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID   string `json:"userId"`
		FriendID string `json:"friendId"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.UserID == "" || body.FriendID == "" {
		writeError(w, http.StatusBadRequest, "userId and friendId are required")
		return
	}

	friendship, err := c.Friends.SendFriendRequest(r.Context(), body.UserID, body.FriendID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, friendship)
}

// Accept handles POST /api/friends/{friendshipId}/accept.
func (c *FriendController) Accept(w http.ResponseWriter, r *http.Request) {
	friendshipID := mux.Vars(r)["friendshipId"]

	var body struct {
		UserID   string `json:"userId"`
		UserName string `json:"userName"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	friendship, err := c.Friends.AcceptFriendRequest(r.Context(), friendshipID, body.UserID, body.UserName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, friendship)
}

// Decline handles POST /api/friends/{friendshipId}/decline.
func (c *FriendController) Decline(w http.ResponseWriter, r *http.Request) {
	friendshipID := mux.Vars(r)["friendshipId"]

	var body struct {
		UserID string `json:"userId"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	friendship, err := c.Friends.DeclineFriendRequest(r.Context(), friendshipID, body.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, friendship)
}

// Block handles POST /api/friends/block.
func (c *FriendController) Block(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID    string `json:"userId"`
		BlockedID string `json:"blockedId"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	friendship, err := c.Friends.BlockUser(r.Context(), body.UserID, body.BlockedID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, friendship)
}

// ListFriends handles GET /api/friends?userId=....
func (c *FriendController) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	profiles, err := c.Friends.ListFriendProfiles(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// ListPending handles GET /api/friends/pending?userId=....
func (c *FriendController) ListPending(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	requests, err := c.Friends.ListPendingRequests(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}
