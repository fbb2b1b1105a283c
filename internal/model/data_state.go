package model

// DataStateKind enumerates the states of an asynchronously loaded value.
type DataStateKind int

const (
	// DataLoading means a fetch is in flight.
	DataLoading DataStateKind = iota
	// DataSuccess means the last fetch produced data.
	DataSuccess
	// DataError means the last fetch failed.
	DataError
)

func (k DataStateKind) String() string {
	switch k {
	case DataLoading:
		return "Loading"
	case DataSuccess:
		return "Success"
	case DataError:
		return "Error"
	default:
		return "Unknown"
	}
}

// DataState is a snapshot of an asynchronously loaded value.
type DataState[T any] struct {
	Data T
	Err  error
	Kind DataStateKind
}

// Loading returns a loading state.
func Loading[T any]() DataState[T] {
	return DataState[T]{Kind: DataLoading}
}

// Success returns a state holding data.
func Success[T any](data T) DataState[T] {
	return DataState[T]{Kind: DataSuccess, Data: data}
}

// Failure returns a state holding the cause of a failed fetch.
func Failure[T any](err error) DataState[T] {
	return DataState[T]{Kind: DataError, Err: err}
}

// IsLoading reports whether the state is DataLoading.
func (s DataState[T]) IsLoading() bool { return s.Kind == DataLoading }

// ViewState is the user-facing outcome of the last completed load.
type ViewState struct {
	Err error
}

// IsSuccess reports whether the last load succeeded.
func (v ViewState) IsSuccess() bool { return v.Err == nil }
