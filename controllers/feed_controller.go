package controllers

import (
	"net/http"

	"playdates_server/models"
	"playdates_server/services"
)

// FeedController exposes the activity feed. The feed tracks one signed-in
// identity at a time; setting the session switches it.
type FeedController struct {
	Feed    *services.FeedService
	Friends *services.FriendService
}

// NewFeedController initializes the feed controller.
func NewFeedController(feed *services.FeedService, friends *services.FriendService) *FeedController {
	return &FeedController{Feed: feed, Friends: friends}
}

// SetSession handles POST /api/feed/session. An empty userId signs out and
// clears the feed. On sign-in the friend set is loaded and pushed to the
// aggregator after the login fetch.
func (c *FeedController) SetSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID string `json:"userId"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := c.Feed.SetUser(r.Context(), body.UserID); err != nil {
		writeServiceError(w, err)
		return
	}

	if body.UserID != "" && c.Friends != nil {
		friendIDs, err := c.Friends.ListFriendIDs(r.Context(), body.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if err := c.Feed.UpdateFriends(r.Context(), friendIDs); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// GetFeed handles GET /api/feed.
func (c *FeedController) GetFeed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activities": c.Feed.Activities(),
		"loading":    c.Feed.Loading(),
	})
}

// Refresh handles POST /api/feed/refresh.
func (c *FeedController) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := c.Feed.Refresh(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activities": c.Feed.Activities(),
	})
}

// PostActivity handles POST /api/feed/activity.
func (c *FeedController) PostActivity(w http.ResponseWriter, r *http.Request) {
	var activity models.Activity
	if err := decodeBody(r, &activity); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if activity.ActorID == "" {
		writeError(w, http.StatusBadRequest, "actorId is required")
		return
	}

	if err := c.Feed.PostActivity(r.Context(), activity); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "success"})
}
