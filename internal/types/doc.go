/*
Package types defines the data structures shared by the resumedesk client.

# Overview

  - ResumeFile: a user-selected document handle (name, bytes, declared media type)
  - AnalysisResult: the structured analysis the backend returns for one resume
  - ResumeRecord: one entry of the backend's resume history
  - UploadPhase / ListPhase: lifecycle states of the two panels
  - JournalEntry: one locally recorded upload attempt

All analysis fields are optional. Rendering helpers (OrNA, JoinSkills) encode the
placeholder rules so that callers never treat a missing field as an error.

# Thread Safety

Values in this package are plain data and are not synchronized. ResumeFile.Open may be
called concurrently; each call returns an independent reader.
*/
package types
