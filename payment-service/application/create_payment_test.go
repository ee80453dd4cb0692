package application

import (
	"context"
	"testing"

	"github.com/northmart/commerce-platform/payment-service/mocks"
	"github.com/northmart/commerce-platform/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreatePayment_Execute(t *testing.T) {
	tests := []struct {
		name          string
		command       *CreatePaymentCommand
		setupMocks    func(*mocks.MockPaymentRepository)
		expectedError string
	}{
		{
			name: "successful card payment creation",
			command: &CreatePaymentCommand{
				OrderID:       "550e8400-e29b-41d4-a716-446655440010",
				CustomerEmail: "customer@example.com",
				Amount:        12000,
				Currency:      "USD",
				Method:        "card",
			},
			setupMocks: func(repo *mocks.MockPaymentRepository) {
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil).Once()
			},
		},
		{
			name: "invalid order ID",
			command: &CreatePaymentCommand{
				OrderID:       "not-a-uuid",
				CustomerEmail: "customer@example.com",
				Amount:        12000,
				Currency:      "USD",
				Method:        "card",
			},
			setupMocks:    func(repo *mocks.MockPaymentRepository) {},
			expectedError: "invalid order ID",
		},
		{
			name: "missing customer email",
			command: &CreatePaymentCommand{
				OrderID:  "550e8400-e29b-41d4-a716-446655440010",
				Amount:   12000,
				Currency: "USD",
				Method:   "card",
			},
			setupMocks:    func(repo *mocks.MockPaymentRepository) {},
			expectedError: "customer email is required",
		},
		{
			name: "negative amount",
			command: &CreatePaymentCommand{
				OrderID:       "550e8400-e29b-41d4-a716-446655440010",
				CustomerEmail: "customer@example.com",
				Amount:        -1,
				Currency:      "USD",
				Method:        "card",
			},
			setupMocks:    func(repo *mocks.MockPaymentRepository) {},
			expectedError: "amount must be positive",
		},
		{
			name: "unrecognized payment method",
			command: &CreatePaymentCommand{
				OrderID:       "550e8400-e29b-41d4-a716-446655440010",
				CustomerEmail: "customer@example.com",
				Amount:        12000,
				Currency:      "USD",
				Method:        "crypto",
			},
			setupMocks:    func(repo *mocks.MockPaymentRepository) {},
			expectedError: "unrecognized payment method",
		},
		{
			name: "repository save error",
			command: &CreatePaymentCommand{
				OrderID:       "550e8400-e29b-41d4-a716-446655440010",
				CustomerEmail: "customer@example.com",
				Amount:        12000,
				Currency:      "USD",
				Method:        "card",
			},
			setupMocks: func(repo *mocks.MockPaymentRepository) {
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Payment")).
					Return(errors.New("database error")).Once()
			},
			expectedError: "failed to save payment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockPaymentRepository(t)
			tt.setupMocks(mockRepo)

			useCase := NewCreatePayment(mockRepo)

			result, err := useCase.Execute(context.Background(), tt.command)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)

				_, err := models.NewID(result.PaymentID)
				assert.NoError(t, err)
			}
		})
	}
}
