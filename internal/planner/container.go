package planner

import "context"

type PlannerContainer struct {
	Service Service
}

func NewPlannerContainer(ctx context.Context) (*PlannerContainer, error) {
	provider, err := NewGeminiProvider(ctx)
	if err != nil {
		return nil, err
	}
	service := NewService(provider)

	return &PlannerContainer{Service: service}, nil
}
