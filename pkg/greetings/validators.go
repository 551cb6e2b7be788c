package greetings

type GreetParams struct {
	Name string `param:"name" json:"-" mod:"trim" validate:"required,min=3,max=100"`
}
