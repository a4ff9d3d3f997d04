package api

import "errors"

// Validator - интерфейс, который реализуют DTO с проверкой
type Validator interface {
	Validate() error
}

// Validate у направления допускает нулевой вектор: это "ждать",
// полноценный тик без перемещения. Диагонали запрещены.
func (p DirectionPayload) Validate() error {
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	if p.Dx != 0 && p.Dy != 0 {
		return errors.New("diagonal movement is not allowed")
	}
	return nil
}

func (p EntityPayload) Validate() error {
	if p.TargetID == "" {
		return errors.New("targetId is required")
	}
	return nil
}

func (p ItemPayload) Validate() error {
	if p.ItemID == "" {
		return errors.New("itemId is required")
	}
	return nil
}
