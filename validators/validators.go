// Package validators checks request payloads before they reach the stores.
package validators

import (
	"fmt"
	"strings"

	"cybertech/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,contains=@"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=student instructor"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type NewCourseRequest struct {
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description" validate:"required"`
	Category    string              `json:"category" validate:"required"`
	Level       string              `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
	Price       float64             `json:"price" validate:"gte=0"`
	IsFree      bool                `json:"isFree"`
	Duration    string              `json:"duration" validate:"required"`
	Image       string              `json:"image" validate:"required,url"`
	Attachments []AttachmentRequest `json:"attachments" validate:"dive"`
}

type AttachmentRequest struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
	Type  string `json:"type" validate:"required,oneof=document video other"`
}

type LessonRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required"`
	Duration    string `json:"duration" validate:"required"`
	VideoURL    string `json:"videoUrl" validate:"required"`
	Description string `json:"description"`
}

type AddStudentRequest struct {
	Email string `json:"email" validate:"required,contains=@"`
	Name  string `json:"name" validate:"required"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ValidateStruct runs the tag-based rules and returns per-field messages,
// empty when everything passes.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["request"] = err.Error()
		return errs
	}
	for _, e := range validationErrs {
		field := strings.ToLower(e.Field()[:1]) + e.Field()[1:]
		switch e.Tag() {
		case "required":
			errs[field] = fmt.Sprintf("%s is required", e.Field())
		case "min":
			errs[field] = fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
		case "oneof":
			errs[field] = fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
		case "url":
			errs[field] = fmt.Sprintf("%s must be a valid URL", e.Field())
		case "contains":
			errs[field] = fmt.Sprintf("%s must contain %q", e.Field(), e.Param())
		default:
			errs[field] = fmt.Sprintf("%s is invalid", e.Field())
		}
	}
	return errs
}

// ValidateNewCourse combines the tag rules with the hosting allow-lists and
// converts the request into the store's input type.
func ValidateNewCourse(req NewCourseRequest) (*models.NewCourse, map[string]string) {
	errs := ValidateStruct(req)
	if errs == nil {
		errs = map[string]string{}
	}

	if req.Image != "" && !IsTrustedImageURL(req.Image) {
		errs["image"] = "Image must be hosted on a trusted domain"
	}
	for i, a := range req.Attachments {
		if a.URL != "" && !IsTrustedAttachmentURL(a.URL) {
			errs[fmt.Sprintf("attachments[%d].url", i)] = "Attachment must be hosted on a trusted domain"
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	course := &models.NewCourse{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Level:       req.Level,
		Price:       req.Price,
		IsFree:      req.IsFree,
		Duration:    req.Duration,
		Image:       req.Image,
	}
	if req.IsFree {
		course.Price = 0
	}
	for _, a := range req.Attachments {
		course.Attachments = append(course.Attachments, models.Attachment{
			Title: a.Title,
			URL:   a.URL,
			Type:  a.Type,
		})
	}
	return course, nil
}

// ValidateLessons checks a wholesale lesson-list replacement and converts it
// for the store.
func ValidateLessons(reqs []LessonRequest) ([]models.Lesson, map[string]string) {
	errs := map[string]string{}
	lessons := make([]models.Lesson, 0, len(reqs))

	for i, req := range reqs {
		if fieldErrs := ValidateStruct(req); fieldErrs != nil {
			for field, msg := range fieldErrs {
				errs[fmt.Sprintf("content[%d].%s", i, field)] = msg
			}
		}
		if req.VideoURL != "" && !IsEmbeddableVideoURL(req.VideoURL) {
			errs[fmt.Sprintf("content[%d].videoUrl", i)] = "Video URL must be a YouTube embed URL"
		}
		lessons = append(lessons, models.Lesson{
			ID:          req.ID,
			Title:       req.Title,
			Duration:    req.Duration,
			VideoURL:    req.VideoURL,
			Description: req.Description,
		})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return lessons, nil
}
