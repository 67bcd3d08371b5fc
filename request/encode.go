package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strings"

	"github.com/ugorji/go/codec"

	"github.com/oasislabs/viewtest/errors"
)

const (
	Boundary               = "BoUnDaRyStRiNg"
	ContentTypeMultipart   = "multipart/form-data; boundary=" + Boundary
	ContentTypeForm        = "application/x-www-form-urlencoded"
	ContentTypeJSON        = "application/json"
	ContentTypeCBOR        = "application/cbor"
	ContentTypeOctetStream = "application/octet-stream"
)

// File is a file part of a multipart body
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Encoder for payloads
type Encoder interface {
	// Encode encodes the provided payload with its format to the
	// provided writer
	Encode(writer io.Writer, v interface{}) error
}

// JsonEncoder is a payload encoder that serializes to JSON
type JsonEncoder struct{}

// Encode is the implementation of Encoder for JsonEncoder
func (e JsonEncoder) Encode(writer io.Writer, v interface{}) error {
	p, err := json.Marshal(v)
	if err != nil {
		return err
	}

	_, err = writer.Write(p)
	return err
}

// CborEncoder is a payload encoder that serializes to CBOR
type CborEncoder struct{}

// Encode is the implementation of Encoder for CborEncoder
func (e CborEncoder) Encode(writer io.Writer, v interface{}) error {
	return codec.NewEncoder(writer, &codec.CborHandle{}).Encode(v)
}

func encoderFor(mediaType string) (Encoder, bool) {
	switch {
	case mediaType == ContentTypeJSON || strings.HasSuffix(mediaType, "+json"):
		return JsonEncoder{}, true
	case mediaType == ContentTypeCBOR || strings.HasSuffix(mediaType, "+cbor"):
		return CborEncoder{}, true
	default:
		return nil, false
	}
}

// hasQueryData returns true for methods whose data goes into
// the query string
func hasQueryData(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodTrace:
		return true
	default:
		return false
	}
}

type field struct {
	key   string
	value interface{}
}

// fields flattens the map types accepted as form data into a list
// sorted by key
func fields(data interface{}) ([]field, bool) {
	var fs []field

	switch data := data.(type) {
	case url.Values:
		return fields(map[string][]string(data))
	case map[string][]string:
		for key, values := range data {
			for _, value := range values {
				fs = append(fs, field{key: key, value: value})
			}
		}
	case map[string]string:
		for key, value := range data {
			fs = append(fs, field{key: key, value: value})
		}
	case map[string]interface{}:
		for key, value := range data {
			switch value := value.(type) {
			case []string:
				for _, v := range value {
					fs = append(fs, field{key: key, value: v})
				}
			case File, *File:
				fs = append(fs, field{key: key, value: value})
			default:
				fs = append(fs, field{key: key, value: fmt.Sprint(value)})
			}
		}
	default:
		return nil, false
	}

	sort.SliceStable(fs, func(i, j int) bool {
		return fs[i].key < fs[j].key
	})

	return fs, true
}

func values(data interface{}) (url.Values, error) {
	fs, ok := fields(data)
	if !ok {
		return nil, errors.New(errors.ErrUnsupportedData, fmt.Errorf("cannot encode %T as form values", data))
	}

	v := make(url.Values)
	for _, f := range fs {
		s, ok := f.value.(string)
		if !ok {
			return nil, errors.New(errors.ErrUnsupportedData, fmt.Errorf("files can only be sent as multipart"))
		}

		v.Add(f.key, s)
	}

	return v, nil
}

// encodeQuery adds data to the query string of u
func encodeQuery(u *url.URL, data interface{}) error {
	if data == nil {
		return nil
	}

	v, err := values(data)
	if err != nil {
		return err
	}

	query := u.Query()
	for key, vs := range v {
		for _, value := range vs {
			query.Add(key, value)
		}
	}

	u.RawQuery = query.Encode()
	return nil
}

// encodeBody encodes data into a body for method and returns the
// body and the content type of the request
func encodeBody(method string, data interface{}, contentType string) ([]byte, string, error) {
	switch data := data.(type) {
	case []byte:
		return data, withDefault(contentType, ContentTypeOctetStream), nil
	case string:
		return []byte(data), withDefault(contentType, ContentTypeOctetStream), nil
	case io.Reader:
		p, err := ioutil.ReadAll(data)
		if err != nil {
			return nil, "", errors.New(errors.ErrEncodeData, err)
		}
		return p, withDefault(contentType, ContentTypeOctetStream), nil
	}

	if len(contentType) == 0 {
		contentType = defaultContentType(method, data)
	}

	if data == nil {
		if contentType == ContentTypeMultipart {
			p, err := encodeMultipart(map[string]string{})
			return p, contentType, err
		}

		return nil, contentType, nil
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, "", errors.New(errors.ErrUnsupportedData, err)
	}

	switch mediaType {
	case "multipart/form-data":
		p, err := encodeMultipart(data)
		return p, contentType, err
	case ContentTypeForm:
		v, err := values(data)
		if err != nil {
			return nil, "", err
		}
		return []byte(v.Encode()), contentType, nil
	}

	encoder, ok := encoderFor(mediaType)
	if !ok {
		return nil, "", errors.New(errors.ErrUnsupportedData,
			fmt.Errorf("no encoder for %T with content type %s", data, contentType))
	}

	buffer := bytes.NewBuffer(nil)
	if err := encoder.Encode(buffer, data); err != nil {
		return nil, "", errors.New(errors.ErrEncodeData, err)
	}

	return buffer.Bytes(), contentType, nil
}

func defaultContentType(method string, data interface{}) string {
	_, isForm := fields(data)

	switch {
	case method == http.MethodPost && (data == nil || isForm):
		return ContentTypeMultipart
	case data == nil:
		return ""
	case isForm:
		return ContentTypeOctetStream
	default:
		return ContentTypeJSON
	}
}

func encodeMultipart(data interface{}) ([]byte, error) {
	fs, ok := fields(data)
	if !ok {
		return nil, errors.New(errors.ErrUnsupportedData, fmt.Errorf("cannot encode %T as multipart", data))
	}

	buffer := bytes.NewBuffer(nil)
	writer := multipart.NewWriter(buffer)
	if err := writer.SetBoundary(Boundary); err != nil {
		return nil, errors.New(errors.ErrInternalError, err)
	}

	for _, f := range fs {
		if err := writeField(writer, f); err != nil {
			return nil, errors.New(errors.ErrEncodeData, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, errors.New(errors.ErrEncodeData, err)
	}

	return buffer.Bytes(), nil
}

func writeField(writer *multipart.Writer, f field) error {
	var file File
	switch value := f.value.(type) {
	case string:
		return writer.WriteField(f.key, value)
	case File:
		file = value
	case *File:
		file = *value
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.key, file.Name))
	header.Set("Content-Type", withDefault(file.ContentType, ContentTypeOctetStream))

	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}

	_, err = part.Write(file.Content)
	return err
}

func withDefault(value, def string) string {
	if len(value) == 0 {
		return def
	}

	return value
}
