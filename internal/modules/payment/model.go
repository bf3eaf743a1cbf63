// README: Payment results returned by the simulated gateway.
package payment

import "tollsim/internal/types"

type Result string

const (
	ResultApproved Result = "approved"
	ResultDenied   Result = "denied"
	ResultDelayed  Result = "delayed"
)

const (
	DefaultDenyProbability  = 0.20
	DefaultDelayProbability = 0.10
)

// Gateway charges a vehicle at a booth.
type Gateway interface {
	Process(vehicleID int, booth string, amount types.Money) Result
}
