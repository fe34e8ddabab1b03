package manage_reservation

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.TargetDate.IsZero() {
		return fmt.Errorf("%w: targetDate is required", ErrInvalidInput)
	}

	if req.Comment != nil && len(*req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment is too long", ErrInvalidInput)
	}

	for _, teamID := range req.TeamIDs {
		if teamID <= 0 {
			return fmt.Errorf("%w: teamID must be positive", ErrInvalidInput)
		}
	}

	return nil
}

// normalizeComment обрезает пробелы, пустой комментарий превращает в nil
func normalizeComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// uniqueTeamIDs убирает дубликаты, сохраняя порядок первого вхождения
func uniqueTeamIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// findMissingIDs возвращает ID из requested, которых нет в existing
func findMissingIDs(requested, existing []int64) []int64 {
	existingSet := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}

	var missing []int64
	for _, id := range requested {
		if _, ok := existingSet[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
