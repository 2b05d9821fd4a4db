package user

import "context"

type callerKey struct{}

// WithCaller stores the caller in ctx.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFromContext returns the caller stored by WithCaller.
func CallerFromContext(ctx context.Context) (Caller, error) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	if !ok {
		return Caller{}, ErrCallerMissing
	}
	if c.CompanyID == "" {
		return Caller{}, ErrCompanyIDRequired
	}
	return c, nil
}

// EmployeeFromContext is CallerFromContext for operations acting on the caller's own employee record.
func EmployeeFromContext(ctx context.Context) (Caller, error) {
	c, err := CallerFromContext(ctx)
	if err != nil {
		return Caller{}, err
	}
	if c.EmployeeID == "" {
		return Caller{}, ErrEmployeeIDRequired
	}
	return c, nil
}
