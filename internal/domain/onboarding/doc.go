// Package onboarding contains the Onboarding bounded context.
// It models a merchant's progress through the store setup wizard.
//
// Key concepts:
//   - Session: aggregate root holding one merchant's onboarding progress
//   - Step: the fixed wizard sequence from welcome to complete
//   - Platform: the e-commerce backend the merchant connects
//   - SessionRepository: port for storing sessions; adapters live in the
//     infrastructure layer
package onboarding
