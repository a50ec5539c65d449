package pet

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pawhome/service/internal/middleware"
	"github.com/pawhome/service/internal/response"
)

// maxMultipartMemory bounds how much of a multipart body is held in memory
// before spilling to temp files.
const maxMultipartMemory = 32 << 20 // 32 MiB

// textFields are the recognized multipart form fields of a pet post.
var textFields = []string{
	"name", "age", "weight", "title", "location",
	"gender", "contact", "breed", "description",
}

// Handler holds HTTP handlers for pet-post endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new pet Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// CreatePost godoc
//
//	@Summary		Create pet post
//	@Description	Create a new pet listing from multipart form fields, with an optional profileImage file.
//	@Tags			posts
//	@Accept			mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Param			name			formData	string	false	"Pet name"
//	@Param			age				formData	string	false	"Pet age"
//	@Param			weight			formData	string	false	"Pet weight"
//	@Param			title			formData	string	false	"Listing title"
//	@Param			location		formData	string	false	"Location"
//	@Param			gender			formData	string	false	"Pet gender"
//	@Param			contact			formData	string	false	"Contact details"
//	@Param			breed			formData	string	false	"Breed"
//	@Param			description		formData	string	false	"Description"
//	@Param			profileImage	formData	file	false	"Pet image"
//	@Success		200				{object}	response.Envelope{data=Post}
//	@Failure		400				{object}	response.Envelope
//	@Failure		401				{object}	response.Envelope
//	@Failure		403				{object}	response.Envelope
//	@Failure		500				{object}	response.Envelope
//	@Router			/createPost [post]
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		response.Unauthorized(w, "No authentication token provided", "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.BadRequest(w, "There was an error parsing the files", err.Error())
		return
	}

	fields := Fields{
		Name:        r.FormValue("name"),
		Age:         r.FormValue("age"),
		Weight:      r.FormValue("weight"),
		Title:       r.FormValue("title"),
		Location:    r.FormValue("location"),
		Gender:      r.FormValue("gender"),
		Contact:     r.FormValue("contact"),
		Breed:       r.FormValue("breed"),
		Description: r.FormValue("description"),
	}

	image, err := formImage(r)
	if err != nil {
		response.BadRequest(w, "There was an error parsing the files", err.Error())
		return
	}

	p, err := h.svc.Create(r.Context(), userID, fields, image)
	if err != nil {
		response.InternalError(w, "Error uploading image or saving data", err)
		return
	}

	response.OK(w, "Pet post created successfully", p)
}

// UpdatePost godoc
//
//	@Summary		Update pet post
//	@Description	Partially update a pet listing: only the form fields present (and non-empty) overwrite stored values. A new profileImage file replaces the stored image URL.
//	@Tags			posts
//	@Accept			mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Param			petId			path		string	true	"Post id"
//	@Param			name			formData	string	false	"Pet name"
//	@Param			age				formData	string	false	"Pet age"
//	@Param			weight			formData	string	false	"Pet weight"
//	@Param			title			formData	string	false	"Listing title"
//	@Param			location		formData	string	false	"Location"
//	@Param			gender			formData	string	false	"Pet gender"
//	@Param			contact			formData	string	false	"Contact details"
//	@Param			breed			formData	string	false	"Breed"
//	@Param			description		formData	string	false	"Description"
//	@Param			profileImage	formData	file	false	"Pet image"
//	@Success		200				{object}	response.Envelope{data=Post}
//	@Failure		400				{object}	response.Envelope
//	@Failure		401				{object}	response.Envelope
//	@Failure		404				{object}	response.Envelope
//	@Failure		500				{object}	response.Envelope
//	@Router			/updatePost/{petId} [put]
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	petID := chi.URLParam(r, "petId")

	// Existence is checked before the body is parsed so unknown ids answer
	// 404 without reading the upload.
	if _, err := h.svc.GetByID(r.Context(), petID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Pet post not found")
			return
		}
		response.InternalError(w, "Error updating pet post", err)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.BadRequest(w, "There was an error parsing the files", err.Error())
		return
	}

	var upd Update
	setters := map[string]**string{
		"name":        &upd.Name,
		"age":         &upd.Age,
		"weight":      &upd.Weight,
		"title":       &upd.Title,
		"location":    &upd.Location,
		"gender":      &upd.Gender,
		"contact":     &upd.Contact,
		"breed":       &upd.Breed,
		"description": &upd.Description,
	}
	for _, name := range textFields {
		// Empty values are treated as absent, matching the historical API.
		if v := r.FormValue(name); v != "" {
			value := v
			*setters[name] = &value
		}
	}

	image, err := formImage(r)
	if err != nil {
		response.BadRequest(w, "There was an error parsing the files", err.Error())
		return
	}

	p, err := h.svc.Update(r.Context(), petID, upd, image)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Pet post not found")
			return
		}
		response.InternalError(w, "Error updating pet post", err)
		return
	}

	response.OK(w, "Pet post updated successfully", p)
}

// GetPostByID godoc
//
//	@Summary		Get pet post by id
//	@Tags			posts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			postId	path		string	true	"Post id"
//	@Success		200		{object}	response.Envelope{data=Post}
//	@Failure		401		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Router			/getPostById/{postId} [get]
func (h *Handler) GetPostByID(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	p, err := h.svc.GetByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Post not found")
			return
		}
		response.InternalError(w, "Error retrieving post", err)
		return
	}

	// Any registered user may read any post; ownership is not checked here.
	response.OK(w, "Post retrieved successfully", p)
}

// GetAllPosts godoc
//
//	@Summary		List all pet posts
//	@Description	Returns every post, unfiltered and unpaginated.
//	@Tags			posts
//	@Produce		json
//	@Success		200	{object}	response.Envelope{data=[]Post}
//	@Failure		500	{object}	response.Envelope
//	@Router			/getAllPosts [get]
func (h *Handler) GetAllPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListAll(r.Context())
	if err != nil {
		response.InternalError(w, "Error retrieving posts", err)
		return
	}
	response.OK(w, "Posts retrieved successfully", posts)
}

// GetPostsByUser godoc
//
//	@Summary		List pet posts by owner
//	@Tags			posts
//	@Produce		json
//	@Param			userId	path		string	true	"Owner user id"
//	@Success		200		{object}	response.Envelope{data=[]Post}
//	@Failure		500		{object}	response.Envelope
//	@Router			/getPosts/{userId} [get]
func (h *Handler) GetPostsByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	posts, err := h.svc.ListByOwner(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Error retrieving posts", err)
		return
	}
	response.OK(w, "Posts retrieved successfully", posts)
}

// DeletePost godoc
//
//	@Summary		Delete pet post
//	@Description	Deletes unconditionally; unknown ids still report success.
//	@Tags			posts
//	@Produce		json
//	@Param			postId	path		string	true	"Post id"
//	@Success		200		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/deletePost/{postId} [delete]
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	if err := h.svc.Delete(r.Context(), postID); err != nil {
		response.InternalError(w, "Error deleting post", err)
		return
	}
	response.OK(w, "Post deleted successfully", nil)
}

// formImage extracts the optional profileImage file from a parsed multipart
// form. Missing or empty files yield nil.
func formImage(r *http.Request) (*Upload, error) {
	file, header, err := r.FormFile("profileImage")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if header.Size == 0 {
		_ = file.Close()
		return nil, nil
	}
	return &Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}, nil
}
