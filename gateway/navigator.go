package gateway

// Navigator is told where to send the user when the session cannot be
// recovered.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a plain function to Navigator
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) {
	f(route)
}

type noopNavigator struct{}

func (noopNavigator) Navigate(string) {}
