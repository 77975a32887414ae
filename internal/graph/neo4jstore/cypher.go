package neo4jstore

import "github.com/yungbote/staffing-graph-backend/internal/graph"

// One fixed statement per node kind and per relationship kind. The closed
// enums in the graph package are the only way to select a statement, so no
// identifier is ever interpolated from request data.

var mergeNodeCypher = map[graph.NodeKind]string{
	graph.KindPerson:        `MERGE (n:Person {id: $key}) SET n += $props`,
	graph.KindSkill:         `MERGE (n:Skill {id: $key}) SET n += $props`,
	graph.KindCompany:       `MERGE (n:Company {id: $key}) SET n += $props`,
	graph.KindUniversity:    `MERGE (n:University {id: $key}) SET n += $props`,
	graph.KindCertification: `MERGE (n:Certification {id: $key}) SET n += $props`,
	graph.KindLocation:      `MERGE (n:Location {id: $key}) SET n += $props`,
	graph.KindProject:       `MERGE (n:Project {id: $key}) SET n += $props`,
	graph.KindRFP:           `MERGE (n:RFP {id: $key}) SET n += $props`,
}

var getNodeCypher = map[graph.NodeKind]string{
	graph.KindPerson:        `MATCH (n:Person {id: $key}) RETURN properties(n) AS props`,
	graph.KindSkill:         `MATCH (n:Skill {id: $key}) RETURN properties(n) AS props`,
	graph.KindCompany:       `MATCH (n:Company {id: $key}) RETURN properties(n) AS props`,
	graph.KindUniversity:    `MATCH (n:University {id: $key}) RETURN properties(n) AS props`,
	graph.KindCertification: `MATCH (n:Certification {id: $key}) RETURN properties(n) AS props`,
	graph.KindLocation:      `MATCH (n:Location {id: $key}) RETURN properties(n) AS props`,
	graph.KindProject:       `MATCH (n:Project {id: $key}) RETURN properties(n) AS props`,
	graph.KindRFP:           `MATCH (n:RFP {id: $key}) RETURN properties(n) AS props`,
}

var listNodesCypher = map[graph.NodeKind]string{
	graph.KindPerson:        `MATCH (n:Person) RETURN n.id AS id, properties(n) AS props ORDER BY n.id`,
	graph.KindSkill:         `MATCH (n:Skill) RETURN n.id AS id, properties(n) AS props ORDER BY n.id`,
	graph.KindCompany:       `MATCH (n:Company) RETURN n.id AS id, properties(n) AS props ORDER BY n.id`,
	graph.KindUniversity:    `MATCH (n:University) RETURN n.id AS id, properties(n) AS props ORDER BY n.id`,
	graph.KindCertification: `MATCH (n:Certification) RETURN n.id AS id, properties(n) AS props ORDER BY n.id`,
	graph.KindLocation:      `MATCH (n:Location) RETURN n.id AS id, properties(n) AS props ORDER BY n.id`,
	graph.KindProject:       `MATCH (n:Project) RETURN n.id AS id, properties(n) AS props ORDER BY n.id`,
	graph.KindRFP:           `MATCH (n:RFP) RETURN n.id AS id, properties(n) AS props ORDER BY n.id`,
}

var deleteNodeCypher = map[graph.NodeKind]string{
	graph.KindPerson:        `MATCH (n:Person {id: $key}) DETACH DELETE n RETURN count(n) AS deleted`,
	graph.KindSkill:         `MATCH (n:Skill {id: $key}) DETACH DELETE n RETURN count(n) AS deleted`,
	graph.KindCompany:       `MATCH (n:Company {id: $key}) DETACH DELETE n RETURN count(n) AS deleted`,
	graph.KindUniversity:    `MATCH (n:University {id: $key}) DETACH DELETE n RETURN count(n) AS deleted`,
	graph.KindCertification: `MATCH (n:Certification {id: $key}) DETACH DELETE n RETURN count(n) AS deleted`,
	graph.KindLocation:      `MATCH (n:Location {id: $key}) DETACH DELETE n RETURN count(n) AS deleted`,
	graph.KindProject:       `MATCH (n:Project {id: $key}) DETACH DELETE n RETURN count(n) AS deleted`,
	graph.KindRFP:           `MATCH (n:RFP {id: $key}) DETACH DELETE n RETURN count(n) AS deleted`,
}

var mergeEdgeCypher = map[graph.RelKind]string{
	graph.RelHasSkill: `
MATCH (a:Person {id: $from})
MATCH (b:Skill {id: $to})
MERGE (a)-[r:HAS_SKILL]->(b)
SET r += $props
RETURN count(r) AS merged`,
	graph.RelWorkedAt: `
MATCH (a:Person {id: $from})
MATCH (b:Company {id: $to})
MERGE (a)-[r:WORKED_AT]->(b)
SET r += $props
RETURN count(r) AS merged`,
	graph.RelStudiedAt: `
MATCH (a:Person {id: $from})
MATCH (b:University {id: $to})
MERGE (a)-[r:STUDIED_AT]->(b)
SET r += $props
RETURN count(r) AS merged`,
	graph.RelEarned: `
MATCH (a:Person {id: $from})
MATCH (b:Certification {id: $to})
MERGE (a)-[r:EARNED]->(b)
SET r += $props
RETURN count(r) AS merged`,
	graph.RelLocatedIn: `
MATCH (a:Person {id: $from})
MATCH (b:Location {id: $to})
MERGE (a)-[r:LOCATED_IN]->(b)
SET r += $props
RETURN count(r) AS merged`,
	graph.RelRequires: `
MATCH (a:Project {id: $from})
MATCH (b:Skill {id: $to})
MERGE (a)-[r:REQUIRES]->(b)
SET r += $props
RETURN count(r) AS merged`,
	graph.RelNeeds: `
MATCH (a:RFP {id: $from})
MATCH (b:Skill {id: $to})
MERGE (a)-[r:NEEDS]->(b)
SET r += $props
RETURN count(r) AS merged`,
	graph.RelAssignedTo: `
MATCH (a:Person {id: $from})
MATCH (b:Project {id: $to})
MERGE (a)-[r:ASSIGNED_TO]->(b)
SET r += $props
RETURN count(r) AS merged`,
	graph.RelWorkedOn: `
MATCH (a:Person {id: $from})
MATCH (b:Project {id: $to})
MERGE (a)-[r:WORKED_ON]->(b)
SET r += $props
RETURN count(r) AS merged`,
}

var outEdgesCypher = map[graph.RelKind]string{
	graph.RelHasSkill:   `MATCH (a:Person {id: $key})-[r:HAS_SKILL]->(b:Skill) RETURN b.id AS other, properties(r) AS props ORDER BY b.id`,
	graph.RelWorkedAt:   `MATCH (a:Person {id: $key})-[r:WORKED_AT]->(b:Company) RETURN b.id AS other, properties(r) AS props ORDER BY b.id`,
	graph.RelStudiedAt:  `MATCH (a:Person {id: $key})-[r:STUDIED_AT]->(b:University) RETURN b.id AS other, properties(r) AS props ORDER BY b.id`,
	graph.RelEarned:     `MATCH (a:Person {id: $key})-[r:EARNED]->(b:Certification) RETURN b.id AS other, properties(r) AS props ORDER BY b.id`,
	graph.RelLocatedIn:  `MATCH (a:Person {id: $key})-[r:LOCATED_IN]->(b:Location) RETURN b.id AS other, properties(r) AS props ORDER BY b.id`,
	graph.RelRequires:   `MATCH (a:Project {id: $key})-[r:REQUIRES]->(b:Skill) RETURN b.id AS other, properties(r) AS props ORDER BY b.id`,
	graph.RelNeeds:      `MATCH (a:RFP {id: $key})-[r:NEEDS]->(b:Skill) RETURN b.id AS other, properties(r) AS props ORDER BY b.id`,
	graph.RelAssignedTo: `MATCH (a:Person {id: $key})-[r:ASSIGNED_TO]->(b:Project) RETURN b.id AS other, properties(r) AS props ORDER BY b.id`,
	graph.RelWorkedOn:   `MATCH (a:Person {id: $key})-[r:WORKED_ON]->(b:Project) RETURN b.id AS other, properties(r) AS props ORDER BY b.id`,
}

var inEdgesCypher = map[graph.RelKind]string{
	graph.RelHasSkill:   `MATCH (a:Person)-[r:HAS_SKILL]->(b:Skill {id: $key}) RETURN a.id AS other, properties(r) AS props ORDER BY a.id`,
	graph.RelWorkedAt:   `MATCH (a:Person)-[r:WORKED_AT]->(b:Company {id: $key}) RETURN a.id AS other, properties(r) AS props ORDER BY a.id`,
	graph.RelStudiedAt:  `MATCH (a:Person)-[r:STUDIED_AT]->(b:University {id: $key}) RETURN a.id AS other, properties(r) AS props ORDER BY a.id`,
	graph.RelEarned:     `MATCH (a:Person)-[r:EARNED]->(b:Certification {id: $key}) RETURN a.id AS other, properties(r) AS props ORDER BY a.id`,
	graph.RelLocatedIn:  `MATCH (a:Person)-[r:LOCATED_IN]->(b:Location {id: $key}) RETURN a.id AS other, properties(r) AS props ORDER BY a.id`,
	graph.RelRequires:   `MATCH (a:Project)-[r:REQUIRES]->(b:Skill {id: $key}) RETURN a.id AS other, properties(r) AS props ORDER BY a.id`,
	graph.RelNeeds:      `MATCH (a:RFP)-[r:NEEDS]->(b:Skill {id: $key}) RETURN a.id AS other, properties(r) AS props ORDER BY a.id`,
	graph.RelAssignedTo: `MATCH (a:Person)-[r:ASSIGNED_TO]->(b:Project {id: $key}) RETURN a.id AS other, properties(r) AS props ORDER BY a.id`,
	graph.RelWorkedOn:   `MATCH (a:Person)-[r:WORKED_ON]->(b:Project {id: $key}) RETURN a.id AS other, properties(r) AS props ORDER BY a.id`,
}

var schemaConstraints = []string{
	`CREATE CONSTRAINT person_id_unique IF NOT EXISTS FOR (n:Person) REQUIRE n.id IS UNIQUE`,
	`CREATE CONSTRAINT skill_id_unique IF NOT EXISTS FOR (n:Skill) REQUIRE n.id IS UNIQUE`,
	`CREATE CONSTRAINT company_id_unique IF NOT EXISTS FOR (n:Company) REQUIRE n.id IS UNIQUE`,
	`CREATE CONSTRAINT university_id_unique IF NOT EXISTS FOR (n:University) REQUIRE n.id IS UNIQUE`,
	`CREATE CONSTRAINT certification_id_unique IF NOT EXISTS FOR (n:Certification) REQUIRE n.id IS UNIQUE`,
	`CREATE CONSTRAINT location_id_unique IF NOT EXISTS FOR (n:Location) REQUIRE n.id IS UNIQUE`,
	`CREATE CONSTRAINT project_id_unique IF NOT EXISTS FOR (n:Project) REQUIRE n.id IS UNIQUE`,
	`CREATE CONSTRAINT rfp_id_unique IF NOT EXISTS FOR (n:RFP) REQUIRE n.id IS UNIQUE`,
}
