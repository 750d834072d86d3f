package ports

import (
	"encoding/json"
	"time"

	"github.com/progressly/progressly-api/internal/domain"
)

type activityResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	CategoryID      *int64  `json:"categoryId"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	ActivityDate    string  `json:"activityDate"`
	EffectiveDate   *string `json:"effectiveDate"`
	CrossesMidnight bool    `json:"crossesMidnight"`
	DurationMinutes int     `json:"durationMinutes"`
}

type dayResponse struct {
	Date       string             `json:"date"`
	Start      time.Time          `json:"start"`
	End        time.Time          `json:"end"`
	Activities []activityResponse `json:"activities"`
}

type categorySummaryResponse struct {
	CategoryID      int64  `json:"categoryId"`
	Name            string `json:"name"`
	Color           string `json:"color"`
	DurationMinutes int    `json:"durationMinutes"`
}

type categoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	IsDefault bool   `json:"isDefault"`
}

type lastEndTimeResponse struct {
	LastEndTime *string `json:"lastEndTime"`
}

type effectiveDateResponse struct {
	EffectiveDate string `json:"effectiveDate"`
}

func activityToResponse(activity domain.Activity) activityResponse {
	var effectiveDate *string
	if activity.EffectiveDate != nil {
		formatted := activity.EffectiveDate.Format(domain.DateLayout)
		effectiveDate = &formatted
	}

	return activityResponse{
		ID:              activity.ID,
		Name:            activity.Name,
		CategoryID:      activity.CategoryID,
		StartTime:       activity.StartTime.String(),
		EndTime:         activity.EndTime.String(),
		ActivityDate:    activity.ActivityDate.Format(domain.DateLayout),
		EffectiveDate:   effectiveDate,
		CrossesMidnight: activity.CrossesMidnight(),
		DurationMinutes: activity.DurationMinutes(),
	}
}

func ActivityToResponseData(activity domain.Activity) ([]byte, error) {
	return json.Marshal(activityToResponse(activity))
}

func DayToResponseData(targetDate time.Time, boundary domain.DayBoundary, activities []domain.Activity) ([]byte, error) {
	activityResponses := make([]activityResponse, 0, len(activities))
	for _, activity := range activities {
		activityResponses = append(activityResponses, activityToResponse(activity))
	}

	return json.Marshal(dayResponse{
		Date:       targetDate.Format(domain.DateLayout),
		Start:      boundary.Start,
		End:        boundary.End,
		Activities: activityResponses,
	})
}

func SummaryToResponseData(summary []domain.CategorySummary) ([]byte, error) {
	response := make([]categorySummaryResponse, 0, len(summary))
	for _, entry := range summary {
		response = append(response, categorySummaryResponse{
			CategoryID:      entry.CategoryID,
			Name:            entry.Name,
			Color:           entry.Color,
			DurationMinutes: entry.DurationMinutes,
		})
	}
	return json.Marshal(response)
}

func CategoriesToResponseData(categories []domain.Category) ([]byte, error) {
	response := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, categoryResponse{
			ID:        category.ID,
			Name:      category.Name,
			Color:     category.Color,
			IsDefault: category.IsDefault,
		})
	}
	return json.Marshal(response)
}

func EffectiveDateToResponseData(date time.Time) ([]byte, error) {
	return json.Marshal(effectiveDateResponse{
		EffectiveDate: date.Format(domain.DateLayout),
	})
}

func LastEndTimeToResponseData(endTime *domain.TimeOfDay) ([]byte, error) {
	var response lastEndTimeResponse
	if endTime != nil {
		formatted := endTime.String()
		response.LastEndTime = &formatted
	}
	return json.Marshal(response)
}
