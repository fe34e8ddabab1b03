package check_availability

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.TargetDate.IsZero() {
		return fmt.Errorf("%w: targetDate is required", ErrInvalidInput)
	}

	return nil
}
