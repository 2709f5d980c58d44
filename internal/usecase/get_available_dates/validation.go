package get_available_dates

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StartDate == "" {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.EndDate == "" {
		return fmt.Errorf("%w: endDate is required", ErrInvalidInput)
	}

	if req.SquareFootage != nil && *req.SquareFootage < 0 {
		return fmt.Errorf("%w: squareFootage must be non-negative", ErrInvalidInput)
	}

	if req.PropertyPrice != nil && *req.PropertyPrice < 0 {
		return fmt.Errorf("%w: propertyPrice must be non-negative", ErrInvalidInput)
	}

	return nil
}
