package logging

import (
	"github.com/sirupsen/logrus"

	"github.com/thebartekbanach/imload/pkg/request"
)

func BaseFields(action string) logrus.Fields {
	return logrus.Fields{
		"action": action,
	}
}

// RequestFields describes one request execution.
func RequestFields(requestContext *request.Context) logrus.Fields {
	req := requestContext.Request()
	return logrus.Fields{
		"requestId": requestContext.ID(),
		"uri":       req.URI(),
		"resize":    requestContext.Resize().Key(),
		"depth":     req.Depth().String(),
	}
}
