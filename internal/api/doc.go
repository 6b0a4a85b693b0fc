// Package api is the client for the planner backend services.
//
// It wraps three collaborators behind one Client:
//   - auth: Login, GuestLogin and Signup
//   - plan generation: GeneratePlan
//   - plan persistence: SavePlan and FetchUserPlan
//
// Requests are validated locally with go-playground/validator before they
// are sent. Every failure is reported as one of three sentinels, matched with
// errors.Is:
//
//	ErrInvalidRequest  the request never left the process
//	ErrRejected        the server answered and refused (see RejectedError)
//	ErrConnectivity    transport failure, unexpected status or bad body
//
// UserMessage turns any of these into text fit for display:
//
//	user, err := client.Login(ctx, email, password)
//	if err != nil {
//	    status = api.UserMessage(err)
//	}
//
// Wire types live in the dto subpackage.
package api
