package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/oral0005/backend-posylka/internal/apperr"
)

type priceTable map[string]float64

func (t priceTable) Lookup(ctx context.Context, fromCity, toCity string) (float64, error) {
	if price, ok := t[fromCity+"|"+toCity]; ok {
		return price, nil
	}
	return 0, fmt.Errorf("%w: no recommended price", apperr.ErrNotFound)
}

func TestRecommendPrice(t *testing.T) {
	prices := priceTable{"Almaty|Astana": 4200}

	tests := []struct {
		name    string
		from    string
		to      string
		want    float64
		wantErr error
	}{
		{name: "stored direction", from: "Almaty", to: "Astana", want: 4200},
		{name: "reversed direction assumed symmetric", from: "Astana", to: "Almaty", want: 4200},
		{name: "surrounding whitespace is ignored", from: "  Almaty ", to: "Astana", want: 4200},
		{name: "unknown route", from: "Almaty", to: "Atyrau", wantErr: apperr.ErrNotFound},
		{name: "missing origin", from: "", to: "Astana", wantErr: apperr.ErrValidation},
		{name: "missing destination", from: "Almaty", to: "   ", wantErr: apperr.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewRecommendPrice(nil, prices)

			got, err := uc.Execute(context.Background(), tt.from, tt.to)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Execute() = %v, want %v", got, tt.want)
			}
		})
	}
}
