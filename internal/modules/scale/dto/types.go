package dto

type ConvertInput struct {
	Value float64
	From  string
	To    string
}

type ConvertOutput struct {
	Value  float64
	VsSHE  float64
	Result float64
	From   string
	To     string
}

type ElectrodeOutput struct {
	ID          string
	Name        string
	OffsetVolts float64
	Pack        string
}

type PackOutput struct {
	Name  string
	Count int
}
