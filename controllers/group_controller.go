package controllers

import (
	"context"
	"net/http"
	"strconv"

	"playdates_server/models"
	"playdates_server/services"

	"github.com/gorilla/mux"
)

// GroupController exposes group and group-post operations.
type GroupController struct {
	Groups *services.GroupService
}

// NewGroupController initializes the group controller.
func NewGroupController(groups *services.GroupService) *GroupController {
	return &GroupController{Groups: groups}
}

// CreateGroup handles POST /api/groups.
func (c *GroupController) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		models.Group
		CreatorID string `json:"creatorId"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.CreatorID == "" {
		writeError(w, http.StatusBadRequest, "creatorId is required")
		return
	}

	created, err := c.Groups.CreateGroup(r.Context(), body.Group, body.CreatorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetGroup handles GET /api/groups/{groupId}.
func (c *GroupController) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	group, err := c.Groups.GetGroup(r.Context(), groupID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// Join handles POST /api/groups/{groupId}/join.
func (c *GroupController) Join(w http.ResponseWriter, r *http.Request) {
	c.membership(w, r, c.Groups.JoinGroup)
}

// Approve handles POST /api/groups/{groupId}/approve.
func (c *GroupController) Approve(w http.ResponseWriter, r *http.Request) {
	c.membership(w, r, c.Groups.ApproveMember)
}

// Leave handles POST /api/groups/{groupId}/leave.
func (c *GroupController) Leave(w http.ResponseWriter, r *http.Request) {
	c.membership(w, r, c.Groups.LeaveGroup)
}

func (c *GroupController) membership(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, groupID, userID string) (*models.Group, error)) {
	groupID := mux.Vars(r)["groupId"]

	var body struct {
		UserID string `json:"userId"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	group, err := op(r.Context(), groupID, body.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// CreatePost handles POST /api/groups/{groupId}/posts.
func (c *GroupController) CreatePost(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	var post models.GroupPost
	if err := decodeBody(r, &post); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	post.GroupID = groupID
	if post.AuthorID == "" {
		writeError(w, http.StatusBadRequest, "authorId is required")
		return
	}

	created, err := c.Groups.CreatePost(r.Context(), post)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListPosts handles GET /api/groups/{groupId}/posts.
func (c *GroupController) ListPosts(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	posts, err := c.Groups.ListGroupPosts(r.Context(), groupID, int32(limit))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// ToggleLike handles POST /api/groups/posts/{postId}/like.
func (c *GroupController) ToggleLike(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	var body struct {
		UserID string `json:"userId"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	post, err := c.Groups.ToggleLike(r.Context(), postID, body.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Vote handles POST /api/groups/posts/{postId}/vote.
func (c *GroupController) Vote(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	var body struct {
		UserID   string `json:"userId"`
		OptionID string `json:"optionId"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.UserID == "" || body.OptionID == "" {
		writeError(w, http.StatusBadRequest, "userId and optionId are required")
		return
	}

	post, err := c.Groups.VoteOnPoll(r.Context(), postID, body.OptionID, body.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}
