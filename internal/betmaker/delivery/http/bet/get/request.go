package get

import (
	"errors"
	"net/url"
	"strconv"
)

const (
	defaultOffset = 0
	defaultLimit  = 10
)

var (
	errInvalidOffset = errors.New("offset must be a non-negative integer")
	errInvalidLimit  = errors.New("limit must be a positive integer")
	errInvalidBetID  = errors.New("invalid bet id")
)

type ListBetsRequest struct {
	Offset int
	Limit  int
}

func parseListRequest(query url.Values) (ListBetsRequest, error) {
	request := ListBetsRequest{
		Offset: defaultOffset,
		Limit:  defaultLimit,
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return ListBetsRequest{}, errInvalidOffset
		}
		request.Offset = offset
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return ListBetsRequest{}, errInvalidLimit
		}
		request.Limit = limit
	}

	return request, nil
}

func parseBetID(raw string) (int64, error) {
	betID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || betID <= 0 {
		return 0, errInvalidBetID
	}

	return betID, nil
}
