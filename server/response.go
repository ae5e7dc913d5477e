package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"ProgressiveBBS/core/account"
	"ProgressiveBBS/logger"
	"ProgressiveBBS/metrics"
)

const maxBodyBytes = 1 << 20

// writeJSON 所有接口都以 {"err":0|1,...} 的形式返回
func writeJSON(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("编码响应失败", logger.ErrorField(err))
	}
}

// ok 成功响应，fields 会并入顶层
func (h *Handler) ok(w http.ResponseWriter, flow string, fields map[string]interface{}) {
	h.metrics.RecordOutcome(flow, metrics.OutcomeSuccess)
	body := map[string]interface{}{"err": 0}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

// fail 业务拒绝原样返回消息；系统错误记录日志后只返回 "server error"
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, flow string, err error) {
	if rej, ok := account.AsRejection(err); ok {
		h.metrics.RecordOutcome(flow, metrics.OutcomeRejected)
		logger.Debug("请求被拒绝", logger.Flow(flow), logger.String("msg", rej.Msg), logger.String("request_id", requestID(r)))
		writeJSON(w, http.StatusOK, map[string]interface{}{"err": 1, "msg": rej.Msg})
		return
	}

	h.metrics.RecordOutcome(flow, metrics.OutcomeError)
	logger.Error("处理请求失败", logger.Flow(flow), logger.ErrorField(err), logger.String("request_id", requestID(r)))
	writeJSON(w, http.StatusOK, map[string]interface{}{"err": 1, "msg": "server error"})
}

// decodePayload 请求体必须是 JSON 对象，否则返回 ErrNotStructured
func decodePayload(r *http.Request, v interface{}) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return account.ErrNotStructured
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return account.ErrNotStructured
	}
	if err := json.Unmarshal(data, v); err != nil {
		return account.ErrNotStructured
	}
	return nil
}
