package upload

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPutObjectAPI struct {
	mock.Mock
}

func (m *MockPutObjectAPI) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

const pdfHeader = "%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n"

func TestS3Uploader_Upload(t *testing.T) {
	client := new(MockPutObjectAPI)
	var put *s3.PutObjectInput
	client.On("PutObject", mock.Anything, mock.AnythingOfType("*s3.PutObjectInput")).
		Run(func(args mock.Arguments) { put = args.Get(1).(*s3.PutObjectInput) }).
		Return(&s3.PutObjectOutput{}, nil)

	u := NewS3Uploader(client, "docs", "http://minio:9000", "", 1<<20)
	u.now = func() time.Time { return time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC) }

	obj, err := u.Upload(context.Background(), "Annual Report.PDF", strings.NewReader(pdfHeader))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(obj.Key, "documents/2024/03/"))
	assert.True(t, strings.HasSuffix(obj.Key, ".pdf"))
	assert.Equal(t, "http://minio:9000/docs/"+obj.Key, obj.URL)
	assert.Equal(t, "application/pdf", obj.ContentType)
	assert.Equal(t, "pdf", obj.FileType)
	assert.Equal(t, int64(len(pdfHeader)), obj.Size)

	require.NotNil(t, put)
	assert.Equal(t, "docs", *put.Bucket)
	assert.Equal(t, obj.Key, *put.Key)
	body, _ := io.ReadAll(put.Body)
	assert.Equal(t, pdfHeader, string(body))
	client.AssertExpectations(t)
}

func TestS3Uploader_SniffsExtensionWhenMissing(t *testing.T) {
	client := new(MockPutObjectAPI)
	client.On("PutObject", mock.Anything, mock.Anything).Return(&s3.PutObjectOutput{}, nil)

	u := NewS3Uploader(client, "docs", "", "https://cdn.example.gov/", 1<<20)
	obj, err := u.Upload(context.Background(), "report", strings.NewReader(pdfHeader))
	require.NoError(t, err)

	assert.Equal(t, "pdf", obj.FileType)
	assert.True(t, strings.HasPrefix(obj.URL, "https://cdn.example.gov/documents/"))
}

func TestS3Uploader_TooLarge(t *testing.T) {
	client := new(MockPutObjectAPI)

	u := NewS3Uploader(client, "docs", "", "", 4)
	_, err := u.Upload(context.Background(), "a.txt", strings.NewReader("12345"))

	assert.ErrorIs(t, err, ErrTooLarge)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
}

func TestS3Uploader_PutFails(t *testing.T) {
	client := new(MockPutObjectAPI)
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	u := NewS3Uploader(client, "docs", "", "", 1<<20)
	_, err := u.Upload(context.Background(), "a.txt", strings.NewReader("hello"))

	assert.ErrorContains(t, err, "access denied")
}
