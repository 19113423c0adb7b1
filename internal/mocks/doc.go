// Package mocks provides centralized mock implementations for testing.
//
// The store mocks are testify mocks: set expectations with On and assert
// them with AssertExpectations. WithTx on every store mock returns the
// mock itself, so expectations also cover calls made inside a
// transaction run by the Transactor fake.
//
// Usage:
//
//	users := new(mocks.MockUserStore)
//	users.On("UpdateCredits", mock.Anything, userID, -1).Return(4, nil)
//
//	svc := service.NewCreditsService(users, cfg, logger)
//	// ...
//	users.AssertExpectations(t)
package mocks
