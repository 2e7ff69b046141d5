package dto

type ProviderInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type Electrode struct {
	Plugin      string
	Name        string
	OffsetVolts float64
}
