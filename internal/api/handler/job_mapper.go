package handler

import "github.com/jobboard/job-portal/internal/core/ports"

// --- Request → Service input ---

func toListInput(q listJobsQuery) ports.ListJobsInput {
	return ports.ListJobsInput{
		Keyword:  q.Keyword,
		Location: q.Location,
		JobType:  q.JobType,
		Page:     q.Page,
		Limit:    q.Limit,
		Sort:     q.Sort,
	}
}

func toCreateJobInput(req createJobRequest, ownerID string) ports.CreateJobInput {
	return ports.CreateJobInput{
		Title:        req.Title,
		Description:  req.Description,
		Company:      req.Company,
		Location:     req.Location,
		JobType:      req.JobType,
		Salary:       req.Salary,
		Requirements: req.Requirements,
		Status:       req.Status,
		OwnerID:      ownerID,
	}
}

func toUpdateJobInput(req updateJobRequest, id, requesterID string) ports.UpdateJobInput {
	return ports.UpdateJobInput{
		ID:           id,
		RequesterID:  requesterID,
		Title:        req.Title,
		Description:  req.Description,
		Company:      req.Company,
		Location:     req.Location,
		JobType:      req.JobType,
		Salary:       req.Salary,
		Requirements: req.Requirements,
		Status:       req.Status,
	}
}

// --- Service result → Response ---

func toJobListResponse(r *ports.ListJobsResult) jobListResponse {
	return jobListResponse{
		Success: true,
		Data:    r.Items,
		Pagination: pagination{
			Page:  r.Page,
			Limit: r.Limit,
			Total: r.Total,
			Pages: r.Pages,
		},
	}
}
