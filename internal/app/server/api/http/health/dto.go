package health

// Input represents the input for the health check endpoint
type Input struct{}

// Output represents the output for the health check endpoint
type Output struct {
	Body Response
}

// Response carries the liveness answer peers probe before writing.
type Response struct {
	Status   string `json:"status" example:"OK" doc:"Health status of the instance"`
	Province string `json:"province,omitempty" example:"Luanda" doc:"Province this instance serves"`
}
