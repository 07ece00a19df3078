/*
Package backend is the client for the resume-analysis service.

# Overview

The service exposes two routes:

	POST {base}/upload-resume/   multipart form, one field "file"
	GET  {base}/resumes/         JSON array of resume records

Client implements both Uploader and Lister. One Client is shared by every caller, so the
upload request logic exists exactly once while each caller keeps its own display state.

# Errors

  - *TransportError: the request never completed (DNS, refused connection, timeout)
  - *BackendError: the request completed with a non-2xx status; Message and Detail hold the
    "message" and "detail" fields of the JSON error body when present

Use errors.As to inspect them.

# Thread Safety

Client is safe for concurrent use.

# Example Usage

	client, err := backend.New(backend.Config{BaseURL: "http://localhost:8000"})
	if err != nil {
		return err
	}

	file, err := types.NewResumeFile("cv.pdf")
	if err != nil {
		return err
	}

	result, err := client.Upload(ctx, file)
	if err != nil {
		var be *backend.BackendError
		if errors.As(err, &be) {
			fmt.Println(be.Status, be.Message)
		}
		return err
	}
	fmt.Println(types.OrNA(result.Analysis.Name))
*/
package backend
