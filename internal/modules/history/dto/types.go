package dto

import "time"

type LogInput struct {
	Value float64
	From  string
	To    string
}

type LogOutput struct {
	RecordID string
	Input    float64
	From     string
	To       string
	Result   float64
	At       time.Time
}

type RecordOutput struct {
	RecordID string
	Input    float64
	From     string
	To       string
	Result   float64
	At       time.Time
}
