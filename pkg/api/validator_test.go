package api

import "testing"

func TestDirectionPayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		dx, dy  int
		wantErr bool
	}{
		{name: "right", dx: 1, dy: 0},
		{name: "left", dx: -1, dy: 0},
		{name: "up", dx: 0, dy: -1},
		{name: "down", dx: 0, dy: 1},
		{name: "wait in place", dx: 0, dy: 0},
		{name: "diagonal", dx: 1, dy: 1, wantErr: true},
		{name: "diagonal negative", dx: -1, dy: -1, wantErr: true},
		{name: "too far x", dx: 2, dy: 0, wantErr: true},
		{name: "too far y", dx: 0, dy: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DirectionPayload{Dx: tt.dx, Dy: tt.dy}.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%d,%d) err = %v, wantErr %v", tt.dx, tt.dy, err, tt.wantErr)
			}
		})
	}
}

func TestEntityPayloadValidate(t *testing.T) {
	if err := (EntityPayload{TargetID: "goblin_1"}).Validate(); err != nil {
		t.Errorf("valid target rejected: %v", err)
	}
	if err := (EntityPayload{}).Validate(); err == nil {
		t.Error("empty target must be rejected")
	}
}

func TestItemPayloadValidate(t *testing.T) {
	if err := (ItemPayload{ItemID: "bread"}).Validate(); err != nil {
		t.Errorf("valid item rejected: %v", err)
	}
	if err := (ItemPayload{}).Validate(); err == nil {
		t.Error("empty item must be rejected")
	}
}
